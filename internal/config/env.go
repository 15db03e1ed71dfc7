package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	Gemini string
	OpenAI string
}

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetAPIKeys reads API keys from the environment. GOOGLE_API_KEY wins over
// GEMINI_API_KEY when both are set.
func GetAPIKeys() APIKeys {
	gemini := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	if gemini == "" {
		gemini = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}

	return APIKeys{
		Gemini: gemini,
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
	}
}

// ConfigPath resolves the settings file location: the explicit flag value,
// then MINUTES_CONFIG, then the default.
func ConfigPath(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := strings.TrimSpace(os.Getenv("MINUTES_CONFIG")); env != "" {
		return env, true
	}
	return DefaultConfigPath, false
}

// InitializeConfig loads .env, the settings file and API keys, and fails
// fast when the selected provider has no key.
// This is the main entry point for configuration loading
func InitializeConfig(flagPath string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	path, explicit := ConfigPath(flagPath)
	cfg, err := Load(path, explicit)
	if err != nil {
		return nil, err
	}

	cfg.APIKeys = GetAPIKeys()
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	return cfg, nil
}
