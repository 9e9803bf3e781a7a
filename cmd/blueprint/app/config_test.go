package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/blueprint/pkg/errors"
)

// validConfig returns a config that passes validation.
func validConfig() *Config {
	return &Config{
		InputRoot:       "imports",
		OutputRoot:      "merged",
		ReadConcurrency: 4,
		Debounce:        500 * time.Millisecond,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input root", func(c *Config) { c.InputRoot = "" }},
		{"empty output root", func(c *Config) { c.OutputRoot = "" }},
		{"unknown format", func(c *Config) { c.Format = "xml" }},
		{"unknown validation mode", func(c *Config) { c.ValidationMode = "eventually" }},
		{"zero read concurrency", func(c *Config) { c.ReadConcurrency = 0 }},
		{"excess read concurrency", func(c *Config) { c.ReadConcurrency = 65 }},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := validConfig()
			test.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "expected a validation error, got %v", err)
		})
	}
}

func TestConfigValidateAcceptsKnownEnums(t *testing.T) {
	for _, format := range []string{"", "table", "json", "yaml"} {
		config := validConfig()
		config.Format = format
		assert.NoError(t, config.Validate(), "format %q", format)
	}
	for _, mode := range []string{"", "complete", "scan-order"} {
		config := validConfig()
		config.ValidationMode = mode
		assert.NoError(t, config.Validate(), "validation mode %q", mode)
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := validConfig()
	config.Format = "table"

	config.UpdateFromFlags(true, false, true, "json", "debug")
	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)

	// Empty flag values must not clobber existing settings
	config.UpdateFromFlags(false, true, false, "", "")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.Quiet)
}
