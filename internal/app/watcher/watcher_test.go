package watcher

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio-minutes/internal/app/converter"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/model"
	"audio-minutes/internal/app/util/files"
)

type fakeProcessor struct {
	mu        sync.Mutex
	scans     int
	processed []string
	scanErr   error
	err       error
}

func (f *fakeProcessor) Do(ctx context.Context, inputDir string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	return 0, f.scanErr
}

func (f *fakeProcessor) ProcessAndSave(ctx context.Context, inputPath string, hook converter.StageHook) (*model.Minutes, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, inputPath)
	if f.err != nil {
		return nil, "", f.err
	}
	out, err := files.WriteSummary(inputPath, "summary")
	return &model.Minutes{Summary: "summary"}, out, err
}

func (f *fakeProcessor) Processed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.processed...)
}

func startWatcher(t *testing.T, proc *fakeProcessor) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(dir, proc, zap.NewNop(), 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	return dir, cancel, done
}

func TestWatcher_ProcessesNewAudio(t *testing.T) {
	proc := &fakeProcessor{}
	dir, cancel, done := startWatcher(t, proc)

	audioPath := filepath.Join(dir, "meeting.m4a")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("%PDF"), 0644))

	assert.Eventually(t, func() bool {
		return len(proc.Processed()) == 1
	}, 3*time.Second, 20*time.Millisecond)

	assert.Equal(t, []string{audioPath}, proc.Processed())
	assert.FileExists(t, filepath.Join(dir, "meeting.txt"))

	cancel()
	select {
	case err := <-done:
		assert.True(t, stderrors.Is(err, context.Canceled))
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}

	proc.mu.Lock()
	assert.Equal(t, 1, proc.scans)
	proc.mu.Unlock()
}

func TestWatcher_StopsOnQuota(t *testing.T) {
	proc := &fakeProcessor{err: apperrors.QuotaExceeded(fmt.Errorf("429"))}
	dir, _, done := startWatcher(t, proc)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "call.mp3"), []byte("audio"), 0644))

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, apperrors.IsQuotaExceeded(err))
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop on quota error")
	}
}

func TestWatcher_InitialScanQuota(t *testing.T) {
	proc := &fakeProcessor{scanErr: apperrors.QuotaExceeded(nil)}
	_, _, done := startWatcher(t, proc)

	select {
	case err := <-done:
		assert.True(t, apperrors.IsQuotaExceeded(err))
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not return")
	}
	assert.Empty(t, proc.Processed())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), &fakeProcessor{}, zap.NewNop(), 0)
	assert.Error(t, err)
}
