package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "https://cards.example.com", "-t", "5", "-i", "card-1"},
			expected: &Config{
				ServerBaseURL:  "https://cards.example.com",
				RequestTimeout: 5 * time.Second,
				CardID:         "card-1",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
