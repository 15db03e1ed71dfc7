package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "audio-minutes/internal/app/errors"
)

// Config is the process-wide configuration. It is built once at startup and
// passed into every component that needs it.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	HTTPS    HTTPSConfig   `yaml:"https"`
	CORS     CORSConfig    `yaml:"cors"`
	Logging  LoggingConfig `yaml:"logging"`
	Provider string        `yaml:"provider" validate:"oneof=gemini openai"`
	Gemini   GeminiConfig  `yaml:"gemini"`
	OpenAI   OpenAIConfig  `yaml:"openai"`
	Audio    AudioConfig   `yaml:"audio"`

	// APIKeys come from the environment only, never from the YAML file
	APIKeys APIKeys `yaml:"-"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" validate:"min=1,max=65535"`
	Environment  string        `yaml:"environment" validate:"oneof=production development test"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
}

type HTTPSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file" validate:"required_if=Enabled true"`
	KeyFile  string `yaml:"key_file" validate:"required_if=Enabled true"`
}

type CORSConfig struct {
	AllowOrigins     []string `yaml:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers"`
	AllowCredentials *bool    `yaml:"allow_credentials"`
}

type LoggingConfig struct {
	LogDir      string `yaml:"log_dir"`
	LogPath     string `yaml:"log_path"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	MaxBytes    int64  `yaml:"max_bytes" validate:"gte=0"`
	BackupCount int    `yaml:"backup_count" validate:"gte=0"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type OpenAIConfig struct {
	TranscriptionModel string `yaml:"transcription_model"`
	ChatModel          string `yaml:"chat_model"`
	BaseURL            string `yaml:"base_url" validate:"omitempty,url"`
}

type AudioConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	Bitrate    string `yaml:"bitrate"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := newConfig()
	cfg.setDefaults()
	return cfg
}

// Load reads the YAML file at path and applies defaults. When required is
// false a missing file yields the defaults; a malformed file is always an
// error.
func Load(path string, required bool) (*Config, error) {
	path = os.ExpandEnv(path)

	cfg := newConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Configuration(err, fmt.Sprintf("failed to parse config file %s", path))
		}
	case os.IsNotExist(err) && !required:
		// defaults only
	case os.IsNotExist(err):
		return nil, apperrors.Configuration(err, fmt.Sprintf("config file not found: %s", path))
	default:
		return nil, apperrors.Configuration(err, fmt.Sprintf("failed to read config file %s", path))
	}

	cfg.setDefaults()
	cfg.Logging.LogLevel = strings.ToLower(cfg.Logging.LogLevel)
	cfg.Provider = strings.ToLower(cfg.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.Configuration(err, "invalid configuration")
	}
	return nil
}

// Addr returns host:port for the HTTP listener
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CheckFiles verifies the certificate and key exist when HTTPS is enabled
func (h HTTPSConfig) CheckFiles() error {
	if !h.Enabled {
		return nil
	}
	for _, f := range []struct{ name, path string }{
		{"certificate", h.CertFile},
		{"key", h.KeyFile},
	} {
		if _, err := os.Stat(f.path); err != nil {
			return apperrors.Configuration(err, fmt.Sprintf("TLS %s file not found: %s", f.name, f.path))
		}
	}
	return nil
}

// RequireAPIKey fails when the selected provider has no key
func (c *Config) RequireAPIKey() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKeys.OpenAI == "" {
			return apperrors.RequiredField("OPENAI_API_KEY")
		}
	default:
		if c.APIKeys.Gemini == "" {
			return apperrors.RequiredField("GOOGLE_API_KEY")
		}
	}
	return nil
}

// ModelName returns the model used for the summary call of the selected provider
func (c *Config) ModelName() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAI.ChatModel
	}
	return c.Gemini.Model
}
