package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/model"
	"audio-minutes/internal/app/testutil"
)

// recordingPipeline checks the upload while the pipeline runs
type recordingPipeline struct {
	path    string
	content []byte
	result  *model.Minutes
	err     error
}

func (p *recordingPipeline) Process(ctx context.Context, inputPath string) (*model.Minutes, error) {
	p.path = inputPath
	p.content, _ = os.ReadFile(inputPath)
	return p.result, p.err
}

func TestMinutesService_Summarize(t *testing.T) {
	tests := []struct {
		name    string
		result  *model.Minutes
		err     error
		wantErr error
	}{
		{name: "success", result: testutil.TestMinutes},
		{name: "quota", err: apperrors.QuotaExceeded(fmt.Errorf("429")), wantErr: apperrors.ErrQuotaExceeded},
		{name: "conversion", err: apperrors.Conversion(nil, "bad audio"), wantErr: apperrors.ErrConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pipeline := &recordingPipeline{result: tt.result, err: tt.err}
			service := NewMinutesService(pipeline, dir, zap.NewNop())

			resp, err := service.Summarize(context.Background(), "meeting.WAV", "wav", strings.NewReader("RIFF data"))

			assert.Equal(t, []byte("RIFF data"), pipeline.content)
			assert.Equal(t, dir, filepath.Dir(pipeline.path))
			assert.True(t, strings.HasPrefix(filepath.Base(pipeline.path), "minutes-upload-"))
			assert.True(t, strings.HasSuffix(pipeline.path, ".wav"))
			assert.NoFileExists(t, pipeline.path)
			assert.Empty(t, testutil.ListDir(t, dir))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, tt.wantErr))
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.result.Summary, resp.Summary)
			assert.Equal(t, tt.result.Transcription, resp.OriginalText)
		})
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, fmt.Errorf("connection reset") }

func TestMinutesService_UploadReadFailure(t *testing.T) {
	dir := t.TempDir()
	pipeline := &recordingPipeline{}
	service := NewMinutesService(pipeline, dir, zap.NewNop())

	_, err := service.Summarize(context.Background(), "a.mp3", "mp3", failingReader{})
	require.Error(t, err)
	assert.Empty(t, pipeline.path)
	assert.Empty(t, testutil.ListDir(t, dir))
}
