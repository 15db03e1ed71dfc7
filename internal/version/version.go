package version

// Set at build time with -ldflags "-X audio-minutes/internal/version.Version=..."
var (
	Version   = "1.0.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ServiceName is reported by the HTTP root endpoint and the CLI
const ServiceName = "Audio transcription and summary"
