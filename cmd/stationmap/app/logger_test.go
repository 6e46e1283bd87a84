package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"env", Config{EnvLogLevel: "error"}, "error"},
		{"invalid env", Config{EnvLogLevel: "loud"}, "info"},
		{"verbose beats env", Config{Verbose: true, EnvLogLevel: "error"}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"verbose and quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit wins", Config{LogLevel: "trace", Quiet: true}, "trace"},
		{"invalid explicit", Config{LogLevel: "chatty"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogOutput: "discard", LogFormat: "json", Verbose: true})
	assert.Equal(t, "debug", logger.GetLevel().String())
}
