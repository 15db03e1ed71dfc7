package provider

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"audio-minutes/internal/app/api"
	"audio-minutes/internal/app/api/gemini"
	"audio-minutes/internal/app/api/openai"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/config"
)

// AvailableProviders lists the provider names accepted in the config
var AvailableProviders = []string{config.ProviderGemini, config.ProviderOpenAI}

// New creates the provider selected by cfg.Provider
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.Provider, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.APIKeys.Gemini, cfg.Gemini.Model, logger.Named("gemini"))
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.APIKeys.OpenAI, cfg.OpenAI, logger.Named("openai")), nil
	default:
		return nil, apperrors.Configuration(nil, fmt.Sprintf("unknown provider type: %s (available: %s)",
			cfg.Provider, strings.Join(AvailableProviders, ", ")))
	}
}
