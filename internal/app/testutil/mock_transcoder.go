package testutil

import (
	"context"
	"os"
	"sync"
)

// MockTranscoder stands in for ffmpeg. On success it writes a small file in
// Dir so callers can check that the artifact gets removed afterwards.
type MockTranscoder struct {
	Dir string
	Err error

	mu      sync.Mutex
	inputs  []string
	outputs []string
}

func NewMockTranscoder(dir string) *MockTranscoder {
	return &MockTranscoder{Dir: dir}
}

func (m *MockTranscoder) ConvertToLightweightMp3(ctx context.Context, inputPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, inputPath)

	if m.Err != nil {
		return "", m.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(m.Dir, "minutes-*.mp3")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(FakeMP3); err != nil {
		return "", err
	}

	m.outputs = append(m.outputs, f.Name())
	return f.Name(), nil
}

// Inputs returns every path passed to the transcoder
func (m *MockTranscoder) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.inputs...)
}

// Outputs returns every artifact the transcoder created
func (m *MockTranscoder) Outputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.outputs...)
}
