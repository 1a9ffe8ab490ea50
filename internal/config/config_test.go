package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "./logs", GetString("logsDir"))
	assert.Equal(t, int64(1), GetInt64("seed"))

	cfg := Storage()
	assert.Equal(t, "memory", cfg.Type)
	assert.Equal(t, "./recordings", cfg.Memory.OutputDir)
	assert.False(t, cfg.Memory.CompressOutput)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "seaward", cfg.Database.Database)
	assert.Empty(t, cfg.Database.SqlitePath)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	doc := `{
		"logLevel": "debug",
		"seed": 99,
		"storage": {
			"type": "database",
			"memory": {
				"outputDir": "/tmp/out",
				"compressOutput": true
			},
			"database": {
				"host": "db.example.com"
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seaward.cfg.json"), []byte(doc), 0o644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, int64(99), GetInt64("seed"))

	cfg := Storage()
	assert.Equal(t, "database", cfg.Type)
	assert.Equal(t, "/tmp/out", cfg.Memory.OutputDir)
	assert.True(t, cfg.Memory.CompressOutput)
	assert.Equal(t, "db.example.com", cfg.Database.Host)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "./logs", GetString("logsDir"))
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seaward.cfg.json"), []byte("{not json"), 0o644))

	err := Load(dir)
	assert.Error(t, err)
}
