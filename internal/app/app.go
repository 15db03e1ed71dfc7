package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"audio-minutes/internal/app/api"
	"audio-minutes/internal/app/api/provider"
	"audio-minutes/internal/app/audio"
	"audio-minutes/internal/app/converter"
	"audio-minutes/internal/app/metrics"
	"audio-minutes/internal/config"
)

// App holds the wired pipeline shared by the CLI commands and the server
type App struct {
	Config    *config.Config
	Provider  api.Provider
	Converter *converter.Converter
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

func provideTranscoder(cfg *config.Config, logger *zap.Logger) converter.Transcoder {
	return audio.NewTranscoder(cfg.Audio, audio.NewExecutor(), logger.Named("audio"))
}

func provideProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.Provider, error) {
	p, err := provider.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}

// InitializeApp builds the converter and its dependencies from cfg
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	p, err := provideProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	conv := converter.NewConverter(provideTranscoder(cfg, logger), p, m, logger.Named("converter"))

	info := p.Info()
	logger.Info("pipeline ready",
		zap.String("provider", info.Name),
		zap.String("model", info.Model),
	)

	return &App{
		Config:    cfg,
		Provider:  p,
		Converter: conv,
		Metrics:   m,
		Logger:    logger,
	}, nil
}
