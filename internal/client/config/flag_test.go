package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-d", "/tmp/r.db", "-t", "5s", "-l", "debug"},
			expected: &Config{
				ServerEndpointAddr: "http://127.0.0.1:9090",
				StoragePath:        "/tmp/r.db",
				RequestTimeout:     5 * time.Second,
				LogLevel:           "debug",
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"cmd", "-x", "1", "-a=http://h:1"},
			expected: &Config{ServerEndpointAddr: "http://h:1"},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
