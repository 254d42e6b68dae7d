package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.ListenAddr, ":8080")
	assert.Equal(t, c.DatabaseDriver, "sqlite")
	assert.Equal(t, c.DatabaseDSN, "cards.db")
	assert.Equal(t, c.PublicBaseURL, "http://localhost:8080")
	assert.Equal(t, c.SecretKey, "secretKey")
	assert.Equal(t, c.TokenTTL, 60*time.Minute)
	assert.Equal(t, c.AdminPasswordHash, "")
	assert.Equal(t, c.S3AccessKey, "admin")
	assert.Equal(t, c.S3SecretKey, "secretpassword")
	assert.Equal(t, c.S3Bucket, "cards")
	assert.Equal(t, c.S3Region, "us-east-1")
	assert.Equal(t, c.S3BaseEndpoint, "http://127.0.0.1:9000/")
	assert.Equal(t, c.S3PublicBaseURL, "http://127.0.0.1:9000")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.ListenAddr, ":8080")
	assert.Equal(t, c.DatabaseDriver, "sqlite")
	assert.Equal(t, c.TokenTTL, 60*time.Minute)
}
