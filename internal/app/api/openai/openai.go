package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"audio-minutes/internal/app/api"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/model"
	"audio-minutes/internal/config"
)

const providerName = "openai"

// Client implements api.Provider with Whisper for the transcription and a
// chat model for the summary. Whisper takes the audio bytes directly, so
// Upload only resolves the local file.
type Client struct {
	client             *gopenai.Client
	transcriptionModel string
	chatModel          string
	logger             *zap.Logger
}

// NewClient creates an OpenAI-backed provider
func NewClient(apiKey string, cfg config.OpenAIConfig, logger *zap.Logger) *Client {
	clientConfig := gopenai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:             gopenai.NewClientWithConfig(clientConfig),
		transcriptionModel: cfg.TranscriptionModel,
		chatModel:          cfg.ChatModel,
		logger:             logger,
	}
}

// Info returns the provider name and chat model
func (c *Client) Info() api.ProviderInfo {
	return api.ProviderInfo{Name: providerName, Model: c.chatModel}
}

// Upload checks the file is readable and returns a handle to it
func (c *Client) Upload(ctx context.Context, path string) (*api.RemoteFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.Upload(err)
	}
	return &api.RemoteFile{
		Name:      filepath.Base(path),
		MIMEType:  api.MP3MIMEType,
		LocalPath: path,
	}, nil
}

// Summarize transcribes with Whisper, then summarizes with the chat model
func (c *Client) Summarize(ctx context.Context, file *api.RemoteFile) (*model.Minutes, error) {
	c.logger.Info("step 1: transcribing audio", zap.String("model", c.transcriptionModel))
	transcription, err := c.client.CreateTranscription(ctx, gopenai.AudioRequest{
		Model:    c.transcriptionModel,
		FilePath: file.LocalPath,
		Prompt:   api.TranscriptionPrompt,
	})
	if err != nil {
		c.logger.Error("transcription failed", zap.Error(err))
		return nil, classify(err, "transcription")
	}
	if strings.TrimSpace(transcription.Text) == "" {
		return nil, apperrors.Summarization(fmt.Errorf("empty transcription"), "transcription")
	}

	c.logger.Info("step 2: summarizing transcript", zap.String("model", c.chatModel))
	resp, err := c.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []gopenai.ChatCompletionMessage{
			{
				Role:    gopenai.ChatMessageRoleUser,
				Content: api.SummaryPrompt(transcription.Text),
			},
		},
	})
	if err != nil {
		c.logger.Error("summary failed", zap.Error(err))
		return nil, classify(err, "summary")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, apperrors.Summarization(fmt.Errorf("empty response from chat model"), "summary")
	}

	return &model.Minutes{
		Summary:       resp.Choices[0].Message.Content,
		Transcription: transcription.Text,
	}, nil
}

func classify(err error, stage string) error {
	if IsQuotaError(err) {
		return apperrors.QuotaExceeded(err)
	}
	return apperrors.Summarization(err, stage)
}

// IsQuotaError uses the HTTP status carried by go-openai errors and falls
// back to the error text otherwise.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	return apperrors.IsQuotaMessage(err.Error())
}
