package converter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"audio-minutes/internal/app/api"
	"audio-minutes/internal/app/audio"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/metrics"
	"audio-minutes/internal/app/model"
	"audio-minutes/internal/app/util/files"
)

// Transcoder produces the temporary lightweight MP3 that gets uploaded
type Transcoder interface {
	ConvertToLightweightMp3(ctx context.Context, inputPath string) (string, error)
}

// StageHook is told when each pipeline stage starts
type StageHook func(stage string)

// Converter runs convert -> upload -> summarize for one audio file at a time.
// It holds no per-run state and is safe to share across requests.
type Converter struct {
	transcoder Transcoder
	provider   api.Provider
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewConverter(transcoder Transcoder, provider api.Provider, m *metrics.Metrics, logger *zap.Logger) *Converter {
	return &Converter{
		transcoder: transcoder,
		provider:   provider,
		metrics:    m,
		logger:     logger,
	}
}

// Process returns the transcription and summary of the audio at inputPath.
// The transcoded MP3 is always deleted before Process returns; errors keep
// their kind (see internal/app/errors).
func (c *Converter) Process(ctx context.Context, inputPath string) (*model.Minutes, error) {
	return c.ProcessWithHook(ctx, inputPath, nil)
}

// ProcessWithHook is Process with a callback per stage, used for progress output
func (c *Converter) ProcessWithHook(ctx context.Context, inputPath string, hook StageHook) (result *model.Minutes, err error) {
	defer func() {
		c.metrics.RecordRun(err)
		if err != nil {
			c.logger.Error("processing failed", zap.String("input", inputPath), zap.Error(err))
		}
	}()

	notify(hook, metrics.StageConvert)
	start := time.Now()
	mp3Path, err := c.transcoder.ConvertToLightweightMp3(ctx, inputPath)
	c.metrics.ObserveStage(metrics.StageConvert, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer c.removeTemp(mp3Path)

	notify(hook, metrics.StageUpload)
	start = time.Now()
	file, err := c.provider.Upload(ctx, mp3Path)
	c.metrics.ObserveStage(metrics.StageUpload, time.Since(start))
	if err != nil {
		return nil, err
	}

	notify(hook, metrics.StageSummarize)
	start = time.Now()
	result, err = c.provider.Summarize(ctx, file)
	c.metrics.ObserveStage(metrics.StageSummarize, time.Since(start))
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ProcessAndSave runs Process and writes the summary next to the input
func (c *Converter) ProcessAndSave(ctx context.Context, inputPath string, hook StageHook) (*model.Minutes, string, error) {
	result, err := c.ProcessWithHook(ctx, inputPath, hook)
	if err != nil {
		return nil, "", err
	}

	out, err := files.WriteSummary(inputPath, result.Summary)
	if err != nil {
		return result, "", err
	}
	c.logger.Info("summary saved", zap.String("path", out))
	return result, out, nil
}

// Do processes every supported file in inputDir that has no summary yet,
// oldest first, and stops at the first quota error. It returns the number
// of files summarized.
func (c *Converter) Do(ctx context.Context, inputDir string) (int, error) {
	pending, err := files.ListFiles(inputDir, func(name string) bool {
		return audio.IsSupported(audio.Extension(name))
	})
	if err != nil {
		return 0, err
	}

	done := 0
	for _, file := range pending {
		if files.Exists(files.SummaryPath(file.FullPath)) {
			c.logger.Debug("summary exists, skipping", zap.String("file", file.Name))
			continue
		}
		if err := ctx.Err(); err != nil {
			return done, err
		}

		if _, _, err := c.ProcessAndSave(ctx, file.FullPath, nil); err != nil {
			if apperrors.IsQuotaExceeded(err) {
				return done, fmt.Errorf("stopped at %s: %w", file.Name, err)
			}
			continue
		}
		done++
	}
	return done, nil
}

// removeTemp deletes the transcoded artifact. Failures are logged and
// counted, never returned.
func (c *Converter) removeTemp(path string) {
	if err := files.RemoveIfExists(path); err != nil {
		c.metrics.RecordCleanupFailure()
		c.logger.Warn("failed to delete temporary file", zap.String("path", path), zap.Error(err))
		return
	}
	c.logger.Info("temporary file deleted", zap.String("path", path))
}

func notify(hook StageHook, stage string) {
	if hook != nil {
		hook(stage)
	}
}
