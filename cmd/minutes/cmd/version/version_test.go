package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v "audio-minutes/internal/version"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Contains(t, buf.String(), v.Version)
	assert.Contains(t, buf.String(), v.Commit)
}
