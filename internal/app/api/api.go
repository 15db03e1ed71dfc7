package api

import (
	"context"
	"fmt"

	"audio-minutes/internal/app/model"
)

// RemoteFile is the handle returned by an upload. Providers that read the
// audio directly from disk keep the local path in LocalPath.
type RemoteFile struct {
	Name      string
	URI       string
	MIMEType  string
	LocalPath string
}

// Uploader sends a local audio file to the remote service
type Uploader interface {
	Upload(ctx context.Context, path string) (*RemoteFile, error)
}

// Summarizer turns an uploaded file into a transcription and a summary.
// The two model calls are issued strictly one after the other.
type Summarizer interface {
	Summarize(ctx context.Context, file *RemoteFile) (*model.Minutes, error)
}

// Provider is a generative-AI backend able to do both steps
type Provider interface {
	Uploader
	Summarizer
	Info() ProviderInfo
}

// ProviderInfo contains metadata about a provider
type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// MP3MIMEType is the content type of every transcoded upload
const MP3MIMEType = "audio/mpeg"

// TranscriptionPrompt asks for a verbatim transcript of the attached audio
const TranscriptionPrompt = "Transcribe the content of this audio file into text accurately. Write down exactly what was said."

const summaryPromptTemplate = `The following is a speech-to-text transcription:

%s

Summarize the content above using this format:

## Main content
- The core topics and what was discussed

## Key points
- Important details or decisions

## Action items (if any)
- Follow-up tasks or planned actions

Keep it clear and concise. If this is not a meeting, summarize it in whatever way fits the content.
`

// SummaryPrompt embeds transcript into the text-only summary request
func SummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryPromptTemplate, transcript)
}
