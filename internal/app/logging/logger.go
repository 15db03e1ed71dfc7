package logging

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"audio-minutes/internal/config"
)

const megabyte = 1024 * 1024

// NewLogger builds a zap logger that writes to the console and to a size
// rotated file under cfg.LogDir.
func NewLogger(cfg config.LoggingConfig, development bool) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", cfg.LogDir, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, cfg.LogFile),
		MaxSize:    maxSizeMB(cfg.MaxBytes),
		MaxBackups: cfg.BackupCount,
	}

	fileEncoder := zap.NewProductionEncoderConfig()
	fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	if development {
		consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoder), zapcore.AddSync(rotator), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), zapcore.Lock(os.Stderr), level),
	)

	logger := zap.New(core, zap.AddCaller())
	logger.Info("logging initialized",
		zap.String("file", rotator.Filename),
		zap.String("level", level.String()),
	)
	return logger, nil
}

// NewConsoleLogger is used by the CLI, which has no log directory
func NewConsoleLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// ParseLevel accepts debug, info, warn/warning and error in any case
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// noRotation is large enough that lumberjack never rolls the file over.
// Its own zero value means 100 MB.
const noRotation = math.MaxInt32

// lumberjack rotates on whole megabytes; max_bytes 0 disables rotation
func maxSizeMB(maxBytes int64) int {
	if maxBytes <= 0 {
		return noRotation
	}
	return int((maxBytes + megabyte - 1) / megabyte)
}
