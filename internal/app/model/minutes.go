package model

// Minutes is the result of one pipeline run
type Minutes struct {
	Summary       string `json:"summary"`
	Transcription string `json:"original_text"`
}
