package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/unbox-app/unbox/internal/flagx"
	"github.com/unbox-app/unbox/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Interval fields use timex.Duration, which parses both
// string values such as "1h" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	ListenAddr        string         `json:"listen_addr"`
	DatabaseDriver    string         `json:"database_driver"`
	DatabaseDSN       string         `json:"database_dsn"`
	PublicBaseURL     string         `json:"public_base_url"`
	SecretKey         string         `json:"secret_key"`
	TokenTTL          timex.Duration `json:"token_ttl"`
	AdminPasswordHash string         `json:"admin_password_hash"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	S3PublicBaseURL   string         `json:"s3_public_base_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when unset, no JSON file is loaded. An unreadable or invalid file
// panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ListenAddr = c.ListenAddr
	config.DatabaseDriver = c.DatabaseDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.PublicBaseURL = c.PublicBaseURL
	config.SecretKey = c.SecretKey
	config.TokenTTL = time.Duration(c.TokenTTL.Duration)
	config.AdminPasswordHash = c.AdminPasswordHash
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3PublicBaseURL = c.S3PublicBaseURL
}
