package common

import (
	"context"

	"go.uber.org/zap"

	"audio-minutes/internal/app"
	"audio-minutes/internal/config"
)

// Options holds the persistent flags of the root command
type Options struct {
	ConfigPath string
	Verbose    bool
}

var Opts Options

// LoadApp loads the configuration and wires the pipeline. The logger is
// built by newLogger once the configuration is known.
func LoadApp(ctx context.Context, newLogger func(cfg *config.Config) (*zap.Logger, error)) (*app.App, error) {
	cfg, err := config.InitializeConfig(Opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	return app.InitializeApp(ctx, cfg, logger)
}
