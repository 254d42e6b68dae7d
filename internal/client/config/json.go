package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/unbox-app/unbox/internal/flagx"
	"github.com/unbox-app/unbox/internal/timex"
)

// JsonConfig is the DTO for reading JSON configuration files; interval
// fields accept both "10s" strings and integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flags, when given.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

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

	config.ServerBaseURL = c.ServerBaseURL
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
