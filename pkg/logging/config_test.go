package logging

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.NotNil(t, cfg.Fields)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestParseTimeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kitchen", time.Kitchen},
		{"rfc3339", time.RFC3339},
		{"unix", ""},
		{"log", "2006-01-02 15:04:05.000"},
		{"2006-01-02 15:04", "2006-01-02 15:04"},
		{"garbage", time.Kitchen},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTimeFormat(tt.input))
		})
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	// NewLoggerFromConfig sets the global level; restore it after
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	t.Run("nil config uses defaults", func(t *testing.T) {
		logger := NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("level applied", func(t *testing.T) {
		logger := NewLoggerFromConfig(&Config{Level: "error", Format: "json", Output: "discard"})
		assert.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
	})

	t.Run("default fields attached", func(t *testing.T) {
		logger := NewLoggerFromConfig(&Config{
			Level:  "info",
			Format: "json",
			Output: "discard",
			Fields: map[string]any{"component": "merge"},
		})
		assert.NotNil(t, logger)
	})
}
