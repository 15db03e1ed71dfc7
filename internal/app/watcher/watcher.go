package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"audio-minutes/internal/app/audio"
	"audio-minutes/internal/app/converter"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/model"
	"audio-minutes/internal/app/util/files"
)

// DefaultSettle is how long a file must stay unchanged before it is processed
const DefaultSettle = 2 * time.Second

// Processor is the part of converter.Converter the watcher drives
type Processor interface {
	Do(ctx context.Context, inputDir string) (int, error)
	ProcessAndSave(ctx context.Context, inputPath string, hook converter.StageHook) (*model.Minutes, string, error)
}

// Watcher summarizes audio files as they appear in a directory. Files are
// handled one at a time, after they stop changing for the settle period.
type Watcher struct {
	dir       string
	processor Processor
	logger    *zap.Logger
	watcher   *fsnotify.Watcher
	settle    time.Duration

	pending map[string]time.Time
}

// New starts watching dir
func New(dir string, processor Processor, logger *zap.Logger, settle time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settle <= 0 {
		settle = DefaultSettle
	}

	return &Watcher{
		dir:       dir,
		processor: processor,
		logger:    logger,
		watcher:   fw,
		settle:    settle,
		pending:   make(map[string]time.Time),
	}, nil
}

// Start summarizes what is already in the directory, then processes new
// files until ctx is done. A quota error ends the loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("file watcher started", zap.String("dir", w.dir), zap.Strings("formats", audio.SupportedFormats))

	count, err := w.processor.Do(ctx, w.dir)
	if err != nil {
		if apperrors.IsQuotaExceeded(err) {
			return err
		}
		w.logger.Warn("initial scan failed", zap.Error(err))
	}
	w.logger.Info("initial scan done", zap.Int("summarized", count))

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", zap.Error(err))

		case now := <-ticker.C:
			if err := w.flush(ctx, now); err != nil {
				return err
			}
		}
	}
}

// Stop closes the underlying fsnotify watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !audio.IsSupported(audio.Extension(event.Name)) {
		w.logger.Debug("ignoring unsupported file", zap.String("file", event.Name))
		return
	}
	if _, seen := w.pending[event.Name]; !seen {
		w.logger.Info("new audio detected", zap.String("file", event.Name))
	}
	w.pending[event.Name] = time.Now()
}

// flush processes every pending file that has settled
func (w *Watcher) flush(ctx context.Context, now time.Time) error {
	for path, last := range w.pending {
		if now.Sub(last) < w.settle {
			continue
		}
		delete(w.pending, path)

		if !files.Exists(path) || files.Exists(files.SummaryPath(path)) {
			continue
		}

		_, out, err := w.processor.ProcessAndSave(ctx, path, nil)
		if err != nil {
			if apperrors.IsQuotaExceeded(err) {
				return fmt.Errorf("stopped at %s: %w", filepath.Base(path), err)
			}
			continue
		}
		w.logger.Info("summary written", zap.String("file", path), zap.String("summary", out))
	}
	return nil
}
