package services

import (
	"context"
	"io"

	"audio-minutes/internal/api/v1/dto"
	"audio-minutes/internal/app/model"
)

// Pipeline is the part of converter.Converter used by the HTTP layer
type Pipeline interface {
	Process(ctx context.Context, inputPath string) (*model.Minutes, error)
}

// MinutesService turns an uploaded audio file into a summary
type MinutesService interface {
	Summarize(ctx context.Context, filename string, ext string, content io.Reader) (*dto.SummarizeResponse, error)
}
