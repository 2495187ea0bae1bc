package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default values for the remote API.
const (
	DefaultBaseURL   = "https://jsonplaceholder.typicode.com"
	DefaultTodosPath = "/todos"
	DefaultUsersPath = "/users"
)

// envPrefix is prepended to environment overrides, e.g.
// TODOBOARD_SOURCE_BASE_URL.
const envPrefix = "TODOBOARD"

// SourceConfig describes where todos and users are fetched from.
type SourceConfig struct {
	// BaseURL is the root URL of the REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TodosPath and UsersPath are appended to BaseURL.
	TodosPath string `mapstructure:"todos_path" yaml:"todos_path"`
	UsersPath string `mapstructure:"users_path" yaml:"users_path"`

	// TimeoutSec bounds a single request. Zero means no timeout.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// MaxRetries is how many times a rate-limited (429) request is
	// retried. Zero disables retries.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// ConfirmDelete asks before removing a row.
	ConfirmDelete bool `mapstructure:"confirm_delete" yaml:"confirm_delete"`

	// RefreshIntervalSec reloads both collections periodically.
	// Zero disables periodic refresh.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// LogConfig controls where and how verbosely the application logs.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ConfigDir returns ~/.config/todoboard, falling back to the working
// directory when the home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "todoboard")
}

// DefaultConfigPath returns the default path for the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultLogPath returns the default log file used by the interactive UI.
func DefaultLogPath() string {
	return filepath.Join(ConfigDir(), "todoboard.log")
}

// DefaultAppConfig returns a configuration that talks to the public
// JSONPlaceholder API with no timeouts and no retries.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Source: SourceConfig{
			BaseURL:   DefaultBaseURL,
			TodosPath: DefaultTodosPath,
			UsersPath: DefaultUsersPath,
		},
		Log: LogConfig{
			File:  DefaultLogPath(),
			Level: "info",
		},
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultAppConfig()
	v.SetDefault("source.base_url", def.Source.BaseURL)
	v.SetDefault("source.todos_path", def.Source.TodosPath)
	v.SetDefault("source.users_path", def.Source.UsersPath)
	v.SetDefault("source.timeout_sec", def.Source.TimeoutSec)
	v.SetDefault("source.max_retries", def.Source.MaxRetries)
	v.SetDefault("display.confirm_delete", def.Display.ConfirmDelete)
	v.SetDefault("display.refresh_interval_sec", def.Display.RefreshIntervalSec)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file is not an error: defaults (plus any TODOBOARD_*
// environment overrides) are returned instead.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that cannot work at runtime.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Source.BaseURL) == "" {
		return errors.New("source.base_url must not be empty")
	}
	if c.Source.TimeoutSec < 0 {
		return errors.New("source.timeout_sec must not be negative")
	}
	if c.Source.MaxRetries < 0 {
		return errors.New("source.max_retries must not be negative")
	}
	if c.Display.RefreshIntervalSec < 0 {
		return errors.New("display.refresh_interval_sec must not be negative")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("source", cfg.Source)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
