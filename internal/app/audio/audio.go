package audio

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/util/files"
	"audio-minutes/internal/config"
)

// SupportedFormats lists the input extensions accepted by the transcoder
// and by the upload endpoint.
var SupportedFormats = []string{"mp3", "wav", "m4a", "ogg", "flac", "aac", "wma", "webm"}

// Extension returns the lower-cased text after the last dot of name, or ""
// when name has no dot.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// IsSupported reports whether ext (without dot, any case) can be transcoded
func IsSupported(ext string) bool {
	return lo.Contains(SupportedFormats, strings.ToLower(ext))
}

// Transcoder re-encodes audio to a small mono MP3 using ffmpeg
type Transcoder struct {
	ffmpegPath string
	bitrate    string
	tempDir    string
	executor   Executor
	logger     *zap.Logger
}

// NewTranscoder creates a Transcoder. Temporary files go to os.TempDir().
func NewTranscoder(cfg config.AudioConfig, executor Executor, logger *zap.Logger) *Transcoder {
	return &Transcoder{
		ffmpegPath: cfg.FFmpegPath,
		bitrate:    cfg.Bitrate,
		executor:   executor,
		logger:     logger,
	}
}

// WithTempDir sets the directory for transcoded files
func (t *Transcoder) WithTempDir(dir string) *Transcoder {
	t.tempDir = dir
	return t
}

// ConvertToLightweightMp3 writes a mono MP3 copy of inputPath into a new
// temporary file and returns its path. The caller owns the returned file.
// The input is never modified; on failure no output file is left behind.
func (t *Transcoder) ConvertToLightweightMp3(ctx context.Context, inputPath string) (string, error) {
	ext := Extension(inputPath)
	if !IsSupported(ext) {
		return "", apperrors.Conversion(nil, "unsupported audio format %q", ext)
	}
	if _, err := os.Stat(inputPath); err != nil {
		return "", apperrors.Conversion(err, "cannot read input %s", inputPath)
	}

	t.logger.Info("converting audio", zap.String("input", inputPath), zap.String("format", ext))

	out, err := os.CreateTemp(t.tempDir, "minutes-*.mp3")
	if err != nil {
		return "", apperrors.Conversion(err, "cannot create temporary output")
	}
	outputPath := out.Name()
	out.Close()

	args := []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-codec:a", "libmp3lame",
		"-b:a", t.bitrate,
		outputPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpegPath, args...); err != nil {
		if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			t.logger.Warn("failed to remove partial output", zap.String("path", outputPath), zap.Error(rmErr))
		}
		t.logger.Error("audio conversion failed", zap.String("input", inputPath), zap.Error(err))
		return "", apperrors.Conversion(err, "ffmpeg could not convert %s", inputPath)
	}

	t.logger.Info("audio conversion completed",
		zap.String("output", outputPath),
		zap.String("size", fmt.Sprintf("%.2fMB", files.SizeMB(outputPath))),
	)
	return outputPath, nil
}
