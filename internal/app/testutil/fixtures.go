package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"audio-minutes/internal/app/model"
)

// FakeMP3 is an ID3 header followed by a few zero bytes
var FakeMP3 = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...)

// TestMinutes is a typical successful result
var TestMinutes = &model.Minutes{
	Summary: "## Main content\nQuarterly planning.\n\n## Key points\n- Budget approved\n\n## Action items (if any)\n- Alice sends the report by Friday",
	Transcription: "Alice: let's start with the budget. Bob: the budget is approved. " +
		"Alice: I'll send the report by Friday.",
}

// CreateTestAudioFile writes a minimal WAV file named name into dir
func CreateTestAudioFile(t *testing.T, dir, name string) string {
	t.Helper()

	wavHeader := []byte{
		0x52, 0x49, 0x46, 0x46, // "RIFF"
		0x24, 0x08, 0x00, 0x00, // File size (2084 bytes)
		0x57, 0x41, 0x56, 0x45, // "WAVE"
		0x66, 0x6D, 0x74, 0x20, // "fmt "
		0x10, 0x00, 0x00, 0x00, // Chunk size
		0x01, 0x00, // Audio format (PCM)
		0x01, 0x00, // Channels (mono)
		0x80, 0x3E, 0x00, 0x00, // Sample rate (16000)
		0x00, 0x7D, 0x00, 0x00, // Byte rate
		0x02, 0x00, // Block align
		0x10, 0x00, // Bits per sample
		0x64, 0x61, 0x74, 0x61, // "data"
		0x00, 0x08, 0x00, 0x00, // Data size (2048 bytes)
	}
	data := append(wavHeader, make([]byte, 2048)...)

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		t.Fatalf("Failed to create test audio file: %v", err)
	}
	return fullPath
}

// CreateTestAudioFileAt is CreateTestAudioFile with a fixed modification time
func CreateTestAudioFileAt(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := CreateTestAudioFile(t, dir, name)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
	return path
}

// ListDir returns the names in dir, failing the test on error
func ListDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
