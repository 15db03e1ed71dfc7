package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"audio-minutes/internal/api/v1/dto"
	"audio-minutes/internal/app/util/files"
)

// MinutesServiceImpl implements MinutesService
type MinutesServiceImpl struct {
	pipeline Pipeline
	tempDir  string
	logger   *zap.Logger
}

// NewMinutesService creates a new minutes service. Uploads are stored in
// tempDir, or the system temp directory when it is empty.
func NewMinutesService(pipeline Pipeline, tempDir string, logger *zap.Logger) MinutesService {
	return &MinutesServiceImpl{
		pipeline: pipeline,
		tempDir:  tempDir,
		logger:   logger,
	}
}

// Summarize stores content to a temporary file, runs the pipeline on it and
// deletes the file before returning, whatever the outcome.
func (s *MinutesServiceImpl) Summarize(ctx context.Context, filename string, ext string, content io.Reader) (*dto.SummarizeResponse, error) {
	uploadPath, err := s.store(ext, content)
	if err != nil {
		return nil, err
	}
	defer s.remove(uploadPath)

	s.logger.Info("new summary request",
		zap.String("file", filename),
		zap.String("size_mb", fmt.Sprintf("%.2f", files.SizeMB(uploadPath))),
	)

	result, err := s.pipeline.Process(ctx, uploadPath)
	if err != nil {
		return nil, err
	}

	s.logger.Info("summary generated", zap.String("file", filename))
	return dto.FromMinutes(result), nil
}

func (s *MinutesServiceImpl) store(ext string, content io.Reader) (string, error) {
	f, err := os.CreateTemp(s.tempDir, "minutes-upload-*."+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	path := f.Name()

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		s.remove(path)
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	if err := f.Close(); err != nil {
		s.remove(path)
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path, nil
}

func (s *MinutesServiceImpl) remove(path string) {
	if err := files.RemoveIfExists(path); err != nil {
		s.logger.Error("failed to delete uploaded file", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Info("uploaded file deleted", zap.String("path", path))
}
