package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"listen_addr":         ":9090",
		"database_driver":     "pgx",
		"database_dsn":        "postgres://cards",
		"public_base_url":     "https://cards.example.com",
		"secret_key":          "my_secret_key",
		"token_ttl":           "30m",
		"admin_password_hash": "$argon2id$hash",
		"s3_access_key":       "user",
		"s3_secret_key":       "password",
		"s3_bucket":           "bucket",
		"s3_region":           "region",
		"s3_base_endpoint":    "base_endpoint",
		"s3_public_base_url":  "public_base",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, ":9090", cfg.ListenAddr)
		assert.Equal(t, "pgx", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://cards", cfg.DatabaseDSN)
		assert.Equal(t, "https://cards.example.com", cfg.PublicBaseURL)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
		assert.Equal(t, "$argon2id$hash", cfg.AdminPasswordHash)
		assert.Equal(t, "user", cfg.S3AccessKey)
		assert.Equal(t, "password", cfg.S3SecretKey)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, "public_base", cfg.S3PublicBaseURL)
	})

	t.Run("no CONFIG and no flags means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ListenAddr:     ":7777",
			DatabaseDriver: "sqlite",
			DatabaseDSN:    "cards.db",
			TokenTTL:       2 * time.Minute,
		}
		parseJson(cfg)

		assert.Equal(t, ":7777", cfg.ListenAddr)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "cards.db", cfg.DatabaseDSN)
		assert.Equal(t, 2*time.Minute, cfg.TokenTTL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
