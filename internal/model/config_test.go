package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
source:
  base_url: http://localhost:8080
  todos_path: /api/todos
  timeout_sec: 5
  max_retries: 2
display:
  confirm_delete: true
  refresh_interval_sec: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Source.BaseURL)
	assert.Equal(t, "/api/todos", cfg.Source.TodosPath)
	assert.Equal(t, DefaultUsersPath, cfg.Source.UsersPath, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Source.TimeoutSec)
	assert.Equal(t, 2, cfg.Source.MaxRetries)
	assert.True(t, cfg.Display.ConfirmDelete)
	assert.Equal(t, 60, cfg.Display.RefreshIntervalSec)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TODOBOARD_SOURCE_BASE_URL", "http://override.test")
	t.Setenv("TODOBOARD_DISPLAY_CONFIRM_DELETE", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://override.test", cfg.Source.BaseURL)
	assert.True(t, cfg.Display.ConfirmDelete)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  max_retries: -1\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_retries")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultAppConfig()
	cfg.Source.BaseURL = "http://saved.test"
	cfg.Source.TimeoutSec = 10
	cfg.Display.RefreshIntervalSec = 30
	cfg.Log.Level = "debug"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestTodoCompletedLabel(t *testing.T) {
	assert.Equal(t, "Yes", Todo{Completed: true}.CompletedLabel())
	assert.Equal(t, "No", Todo{}.CompletedLabel())
}
