package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Locale:      "en-US",
		SettingsDir: "./settings",
		Builtins:    true,
		LogLevel:    "info",
		LogFormat:   "console",
	}, cfg)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gact.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: es-ES\nbuiltins: false\nlog_level: debug\n"), 0o644))
	t.Setenv("GACT_LOG_LEVEL", "warn")
	t.Setenv("GACT_SETTINGS_DIR", "/srv/world")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "es-ES", cfg.Locale)
	assert.False(t, cfg.Builtins)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/srv/world", cfg.SettingsDir)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseEnv_InvalidBool(t *testing.T) {
	t.Setenv("GACT_BUILTINS", "sometimes")
	var cfg Config
	assert.Error(t, ParseEnv(&cfg))
}
