package app

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/blueprint/pkg/constants"
	"github.com/agentstation/blueprint/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml"`

	// Config file
	ConfigFile string

	// Merge configuration
	InputRoot       string        `validate:"required"`
	OutputRoot      string        `validate:"required"`
	ValidationMode  string        `validate:"omitempty,oneof=complete scan-order"`
	ReadConcurrency int           `validate:"min=1,max=64"`
	Debounce        time.Duration `validate:"min=0"`

	// Logging configuration
	LogLevel  string `validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.blueprint.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".blueprint")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	// Build config from viper
	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		// Config file
		ConfigFile: viper.ConfigFileUsed(),

		// Merge configuration
		InputRoot:       viper.GetString("input_root"),
		OutputRoot:      viper.GetString("output_root"),
		ValidationMode:  viper.GetString("validation_mode"),
		ReadConcurrency: viper.GetInt("read_concurrency"),
		Debounce:        viper.GetDuration("debounce"),

		// Logging configuration. LogLevel stays empty here; only the
		// --log-level flag fills it, so the LOG_LEVEL environment variable
		// keeps its place below the -v/-q shortcuts.
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Set defaults
	if config.InputRoot == "" {
		config.InputRoot = constants.DefaultInputRoot
	}
	if config.OutputRoot == "" {
		config.OutputRoot = constants.DefaultOutputRoot
	}
	if config.ReadConcurrency == 0 {
		config.ReadConcurrency = constants.DefaultReadConcurrency
	}
	if config.Debounce == 0 {
		config.Debounce = constants.DefaultDebounce
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate is the shared validator instance for config structs.
var validate = validator.New()

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field := verrs[0]
			return &errors.ValidationError{
				Field:   field.Field(),
				Value:   field.Value(),
				Message: "failed " + field.Tag() + " validation",
			}
		}
		return errors.WrapValidation("config", err)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
