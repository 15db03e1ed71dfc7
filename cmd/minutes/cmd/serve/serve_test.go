package serve

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/config"
)

func TestNewServerLogger(t *testing.T) {
	t.Cleanup(func() { host, port = "", 0 })

	t.Run("flag overrides", func(t *testing.T) {
		host, port = "127.0.0.1", 9001
		cfg := config.Default()
		cfg.Logging.LogDir = t.TempDir()

		logger, err := newServerLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.Equal(t, "127.0.0.1:9001", cfg.Server.Addr())
		assert.FileExists(t, filepath.Join(cfg.Logging.LogDir, cfg.Logging.LogFile))
	})

	t.Run("missing certificate", func(t *testing.T) {
		host, port = "", 0
		cfg := config.Default()
		cfg.Logging.LogDir = t.TempDir()
		cfg.HTTPS.Enabled = true
		cfg.HTTPS.CertFile = filepath.Join(t.TempDir(), "cert.pem")
		cfg.HTTPS.KeyFile = filepath.Join(t.TempDir(), "key.pem")

		_, err := newServerLogger(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.Contains(t, err.Error(), "cert.pem")
	})
}
