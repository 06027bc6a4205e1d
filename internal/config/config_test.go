package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SHEETOPS_LOG_LEVEL", "")
	t.Setenv("SHEETOPS_LOG_FORMAT", "")
	t.Setenv("SHEETOPS_PRETTY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("SHEETOPS_LOG_LEVEL", "")
	t.Setenv("SHEETOPS_LOG_FORMAT", "")
	t.Setenv("SHEETOPS_PRETTY", "")

	path := filepath.Join(t.TempDir(), "sheetops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\npretty: true\nparallelism: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, 2, cfg.Parallelism)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHEETOPS_LOG_LEVEL", "WARN")
	t.Setenv("SHEETOPS_LOG_FORMAT", "console")
	t.Setenv("SHEETOPS_PRETTY", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Pretty)
}

func TestValidate(t *testing.T) {
	t.Run("bad level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "loud"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad format", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative parallelism", func(t *testing.T) {
		cfg := Default()
		cfg.Parallelism = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
