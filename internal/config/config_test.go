package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KATALOG_ADMIN_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "data/items.sqlite3", cfg.Database.Path)
	assert.Equal(t, "uploads", cfg.Media.UploadDir)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "secret", cfg.Auth.AdminPassword)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KATALOG_ADMIN_PASSWORD", "secret")
	t.Setenv("KATALOG_ADDR", "127.0.0.1:9000")
	t.Setenv("KATALOG_DB", "/tmp/test.sqlite3")
	t.Setenv("KATALOG_UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/test.sqlite3", cfg.Database.Path)
	assert.Equal(t, "/tmp/uploads", cfg.Media.UploadDir)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadRequiresAdminPassword(t *testing.T) {
	t.Setenv("KATALOG_ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin password")
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	t.Setenv("KATALOG_ADMIN_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	t.Setenv("KATALOG_ADMIN_PASSWORD", "secret")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
}
