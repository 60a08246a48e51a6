package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:3001", cfg.Server.URL)
	assert.Equal(t, 10, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 500, cfg.UI.DebounceMS)
	assert.False(t, cfg.UI.OptimisticToggle)
	assert.Contains(t, cfg.Logging.File, "bookden")
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	// Run from an empty directory so a stray config.yaml in the
	// checkout can't leak in, and reset viper's global state after
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.Server.URL)
	assert.Equal(t, 500, cfg.UI.DebounceMS)
}
