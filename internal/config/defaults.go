package config

import "time"

// Default configuration constants
const (
	DefaultConfigPath = "config/config.yaml"

	// Server defaults
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 8000
	DefaultEnvironment  = "production"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 10 * time.Minute

	// Logging defaults
	DefaultLogDir      = "logs"
	DefaultLogFile     = "server.log"
	DefaultLogLevel    = "info"
	DefaultMaxBytes    = 10 * 1024 * 1024
	DefaultBackupCount = 5

	// Model defaults
	DefaultProvider           = ProviderGemini
	DefaultGeminiModel        = "gemini-1.5-flash-latest"
	DefaultTranscriptionModel = "whisper-1"
	DefaultChatModel          = "gpt-4o-mini"

	// Audio defaults
	DefaultFFmpegPath = "ffmpeg"
	DefaultBitrate    = "32k"
)

// Supported providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// newConfig seeds the settings where zero is a meaningful value, so an
// explicit 0 in the YAML survives setDefaults.
func newConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			MaxBytes:    DefaultMaxBytes,
			BackupCount: DefaultBackupCount,
		},
	}
}

// setDefaults fills zero values with the defaults above
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Environment == "" {
		c.Server.Environment = DefaultEnvironment
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}

	if c.CORS.AllowOrigins == nil {
		c.CORS.AllowOrigins = []string{"*"}
	}
	if c.CORS.AllowMethods == nil {
		c.CORS.AllowMethods = []string{"*"}
	}
	if c.CORS.AllowHeaders == nil {
		c.CORS.AllowHeaders = []string{"*"}
	}
	if c.CORS.AllowCredentials == nil {
		allow := true
		c.CORS.AllowCredentials = &allow
	}

	// log_path is accepted as an older spelling of log_dir
	if c.Logging.LogDir == "" {
		c.Logging.LogDir = c.Logging.LogPath
	}
	if c.Logging.LogDir == "" {
		c.Logging.LogDir = DefaultLogDir
	}
	if c.Logging.LogFile == "" {
		c.Logging.LogFile = DefaultLogFile
	}
	if c.Logging.LogLevel == "" {
		c.Logging.LogLevel = DefaultLogLevel
	}

	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
	if c.OpenAI.TranscriptionModel == "" {
		c.OpenAI.TranscriptionModel = DefaultTranscriptionModel
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = DefaultChatModel
	}

	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = DefaultFFmpegPath
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = DefaultBitrate
	}
}
