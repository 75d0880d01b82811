package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.ExportEnabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.ReadOnly)
	assert.Equal(t, "names", cfg.Lookup.Table)
	assert.Empty(t, cfg.Lookup.Columns)
	assert.Equal(t, "md5:80f0f5b8ea8c01a911c1a9196dcbd2fd", cfg.Source.KnownHash)
	assert.Equal(t, "names.db", cfg.Source.FileName)
	assert.Equal(t, "babel", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/data/names.db")
	t.Setenv("LOOKUP_COLUMNS", "broad_sample,standard_key")
	t.Setenv("SERVER_API_KEY", "secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/data/names.db", cfg.Database.Path)
	assert.Equal(t, []string{"broad_sample", "standard_key"}, cfg.Lookup.Columns)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOOKUP_TABLE=aliases\nLOG_FORMAT=console\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LOOKUP_TABLE")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "aliases", cfg.Lookup.Table)
	assert.Equal(t, "console", cfg.Log.Format)
}
