package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todoboard.log")

	logger, err := New(path, "info", false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("fetch complete")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"fetch complete"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todoboard.log")

	logger, err := New(path, "warn", true)
	require.NoError(t, err)

	logger.Debug("request sent")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request sent")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New("", "loud", false)
	assert.ErrorContains(t, err, "parsing log level")
}
