// Package config handles configuration loading and validation for codescore.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is the default configuration file name (without extension).
	DefaultConfigFile = ".codescore"
	// DefaultConfigType is the default configuration file type.
	DefaultConfigType = "yaml"
)

// Output format names accepted by output.format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// DefaultDebounceMS is the watch-mode debounce window in milliseconds.
const DefaultDebounceMS = 100

// Config holds all configuration for codescore. The scoring rules
// themselves are not configurable; only the output rendering and the
// watch behavior are.
type Config struct {
	// Output controls how reports are rendered.
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	// Watch contains watch-mode configuration.
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format selects the report format: "json" or "text".
	Format string `mapstructure:"format" yaml:"format"`
	// ShowTotal appends the mean total score to the report.
	ShowTotal bool `mapstructure:"show_total" yaml:"show_total"`
}

// WatchConfig holds watch-mode configuration.
type WatchConfig struct {
	// DebounceMS is the quiet window, in milliseconds, before a changed
	// file is re-scored.
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// Load loads configuration from file, environment variables, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Check if a specific config file was set via CLI flag (stored in global viper)
	globalViper := viper.GetViper()
	if configFile := globalViper.GetString("config_file"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Config file settings for default paths
		v.SetConfigName(DefaultConfigFile)
		v.SetConfigType(DefaultConfigType)

		// Look for config in current directory
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("CODESCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Output.Format != FormatJSON && c.Output.Format != FormatText {
		return fmt.Errorf("output format must be %q or %q, got %q", FormatJSON, FormatText, c.Output.Format)
	}

	if c.Watch.DebounceMS <= 0 {
		return fmt.Errorf("watch debounce_ms must be positive, got %d", c.Watch.DebounceMS)
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("output.show_total", false)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}
