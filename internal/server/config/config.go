// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the card server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP API.
//   - DatabaseDriver: "pgx" for PostgreSQL or "sqlite" for a local file.
//   - DatabaseDSN: connection string for the selected driver.
//   - PublicBaseURL: externally reachable origin used in share links.
//   - SecretKey: HMAC secret for signing admin JWTs (HS256). Do not use test defaults in prod.
//   - TokenTTL: admin token lifetime.
//   - AdminPasswordHash: argon2id hash checked by the token endpoint.
//   - S3AccessKey / S3SecretKey: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3PublicBaseURL: object storage settings.
type Config struct {
	ListenAddr        string
	DatabaseDriver    string
	DatabaseDSN       string
	PublicBaseURL     string
	SecretKey         string
	TokenTTL          time.Duration
	AdminPasswordHash string
	S3AccessKey       string
	S3SecretKey       string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
	S3PublicBaseURL   string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "cards.db"
	c.PublicBaseURL = "http://localhost:8080"
	c.SecretKey = "secretKey"
	c.TokenTTL = 60 * time.Minute
	// Empty hash disables the token endpoint until one is configured.
	c.AdminPasswordHash = ""
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "cards"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3PublicBaseURL = "http://127.0.0.1:9000"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
