package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"audio-minutes/internal/app/api"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/model"
)

const providerName = "gemini"

// contentGenerator is the subset of genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// fileUploader is the subset of genai.Files used here
type fileUploader interface {
	UploadFromPath(ctx context.Context, path string, config *genai.UploadFileConfig) (*genai.File, error)
}

// Client implements api.Provider on the Gemini API
type Client struct {
	models contentGenerator
	files  fileUploader
	model  string
	logger *zap.Logger
}

// NewClient creates a Gemini client for model using apiKey
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.Configuration(err, "failed to create Gemini client")
	}

	return &Client{
		models: client.Models,
		files:  client.Files,
		model:  model,
		logger: logger,
	}, nil
}

// Info returns the provider name and model
func (c *Client) Info() api.ProviderInfo {
	return api.ProviderInfo{Name: providerName, Model: c.model}
}

// Upload sends path to the Gemini Files API
func (c *Client) Upload(ctx context.Context, path string) (*api.RemoteFile, error) {
	c.logger.Info("uploading file to Gemini", zap.String("path", path))

	file, err := c.files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: api.MP3MIMEType})
	if err != nil {
		c.logger.Error("upload failed", zap.Error(err))
		return nil, classify(err, apperrors.Upload)
	}

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = api.MP3MIMEType
	}

	c.logger.Info("upload completed", zap.String("name", file.Name))
	return &api.RemoteFile{
		Name:      file.Name,
		URI:       file.URI,
		MIMEType:  mimeType,
		LocalPath: path,
	}, nil
}

// Summarize transcribes the uploaded audio, then summarizes the transcript
// in a second, text-only call.
func (c *Client) Summarize(ctx context.Context, file *api.RemoteFile) (*model.Minutes, error) {
	c.logger.Info("analyzing audio", zap.String("model", c.model), zap.String("file", file.Name))

	c.logger.Info("step 1: transcribing audio")
	transcriptionContents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(api.TranscriptionPrompt),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		}, genai.RoleUser),
	}
	transcription, err := c.generate(ctx, transcriptionContents, "transcription")
	if err != nil {
		return nil, err
	}

	c.logger.Info("step 2: summarizing transcript")
	summary, err := c.generate(ctx, genai.Text(api.SummaryPrompt(transcription)), "summary")
	if err != nil {
		return nil, err
	}

	c.logger.Info("analysis completed")
	return &model.Minutes{
		Summary:       summary,
		Transcription: transcription,
	}, nil
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content, stage string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.Error("generate content failed", zap.String("stage", stage), zap.Error(err))
		return "", classify(err, func(err error) error {
			return apperrors.Summarization(err, stage)
		})
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", apperrors.Summarization(fmt.Errorf("empty response from Gemini"), stage)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// classify maps err to the quota kind, or to the kind produced by fallback
func classify(err error, fallback func(error) error) error {
	if IsQuotaError(err) {
		return apperrors.QuotaExceeded(err)
	}
	return fallback(err)
}

// IsQuotaError prefers the structured status from the API and only falls
// back to matching the error text when the error carries no status code.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return isQuotaStatus(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code != 0 {
		return isQuotaStatus(*apiErrPtr)
	}

	return apperrors.IsQuotaMessage(err.Error())
}

func isQuotaStatus(apiErr genai.APIError) bool {
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
}
