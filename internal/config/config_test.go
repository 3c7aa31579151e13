package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"MARGA_DB", "MARGA_EXPORT_DIR", "MARGA_LOG_MODE", "MARGA_LOG_LEVEL", "MARGA_ADDR", "MARGA_CORS_ORIGINS", "MARGA_LOG_HASH_IDS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".marga", "marga.db"), cfg.DBPath)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogHashIDs)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MARGA_DB", ":memory:")
	t.Setenv("MARGA_EXPORT_DIR", "/tmp/out")
	t.Setenv("MARGA_LOG_MODE", "production")
	t.Setenv("MARGA_LOG_LEVEL", "debug")
	t.Setenv("MARGA_LOG_HASH_IDS", "true")
	t.Setenv("MARGA_ADDR", "127.0.0.1:9000")
	t.Setenv("MARGA_CORS_ORIGINS", "http://localhost:3000, https://marga.app ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
	assert.Equal(t, "production", cfg.LogMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogHashIDs)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "https://marga.app"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	valid := Config{DBPath: "x.db", ExportDir: ".", Addr: ":1", LogLevel: "warn"}
	require.NoError(t, valid.Validate())

	cases := map[string]func(*Config){
		"empty db":     func(c *Config) { c.DBPath = "" },
		"empty export": func(c *Config) { c.ExportDir = "" },
		"empty addr":   func(c *Config) { c.Addr = "" },
		"bad level":    func(c *Config) { c.LogLevel = "verbose" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("MARGA_DB", "x.db")
	t.Setenv("MARGA_LOG_LEVEL", "loud")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid configuration")
}
