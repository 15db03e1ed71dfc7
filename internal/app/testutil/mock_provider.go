package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"audio-minutes/internal/app/api"
	"audio-minutes/internal/app/model"
)

// MockProvider is a testify mock of api.Provider
type MockProvider struct {
	mock.Mock
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Upload(ctx context.Context, path string) (*api.RemoteFile, error) {
	args := m.Called(ctx, path)
	if f := args.Get(0); f != nil {
		return f.(*api.RemoteFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) Summarize(ctx context.Context, file *api.RemoteFile) (*model.Minutes, error) {
	args := m.Called(ctx, file)
	if r := args.Get(0); r != nil {
		return r.(*model.Minutes), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) Info() api.ProviderInfo {
	return api.ProviderInfo{Name: "mock", Model: "mock-model"}
}

// ExpectSuccess sets up an upload and summary that both succeed
func (m *MockProvider) ExpectSuccess(result *model.Minutes) *MockProvider {
	file := &api.RemoteFile{Name: "files/mock", URI: "https://example.invalid/files/mock", MIMEType: api.MP3MIMEType}
	m.On("Upload", mock.Anything, mock.Anything).Return(file, nil)
	m.On("Summarize", mock.Anything, file).Return(result, nil)
	return m
}
