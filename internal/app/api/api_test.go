package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryPrompt(t *testing.T) {
	prompt := SummaryPrompt("we agreed to ship on friday")

	assert.Contains(t, prompt, "we agreed to ship on friday")
	for _, section := range []string{"## Main content", "## Key points", "## Action items"} {
		assert.Contains(t, prompt, section)
	}
}

func TestSummaryPrompt_PercentInTranscript(t *testing.T) {
	prompt := SummaryPrompt("revenue grew 20%s and 5%d")
	assert.Contains(t, prompt, "revenue grew 20%s and 5%d")
}
