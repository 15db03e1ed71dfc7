package dto

import (
	"fmt"
	"mime/multipart"
	"strings"

	"audio-minutes/internal/api/errors"
	"audio-minutes/internal/app/audio"
	"audio-minutes/internal/app/model"
)

// SummarizeRequest is the multipart form of POST /summarize
type SummarizeRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// Extension returns the lower-cased extension of the uploaded file name
func (r *SummarizeRequest) Extension() string {
	return audio.Extension(r.File.Filename)
}

// Validate rejects file names outside the supported formats
func (r *SummarizeRequest) Validate() error {
	if !audio.IsSupported(r.Extension()) {
		return errors.NewBadRequestError(fmt.Sprintf(
			"Unsupported file format. Supported formats: %s",
			strings.Join(audio.SupportedFormats, ", ")))
	}
	return nil
}

// SummarizeResponse is returned on success
type SummarizeResponse struct {
	Summary      string `json:"summary"`
	OriginalText string `json:"original_text"`
}

// FromMinutes converts a pipeline result
func FromMinutes(m *model.Minutes) *SummarizeResponse {
	return &SummarizeResponse{
		Summary:      m.Summary,
		OriginalText: m.Transcription,
	}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ServiceInfo is returned by GET /
type ServiceInfo struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	PoweredBy string            `json:"powered_by"`
	Endpoints map[string]string `json:"endpoints"`
}
