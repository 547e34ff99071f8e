// Package config loads the optional kerncount configuration file.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"kerncount/internal/logging"
)

// Config represents the complete kerncount configuration
type Config struct {
	Tools   ToolsConfig   `json:"tools" mapstructure:"tools"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ToolsConfig names the external binaries the pipeline invokes.
// Values are passed to exec.LookPath, so plain names and absolute
// paths both work.
type ToolsConfig struct {
	Ninja     string `json:"ninja" mapstructure:"ninja"`
	Grep      string `json:"grep" mapstructure:"grep"`
	Cuobjdump string `json:"cuobjdump" mapstructure:"cuobjdump"`
	CuFilt    string `json:"cufilt" mapstructure:"cufilt"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Ninja:     "ninja",
			Grep:      "grep",
			Cuobjdump: "cuobjdump",
			CuFilt:    "cu++filt",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <workDir>/.kerncount/config.json.
// A missing config file is not an error; the defaults are returned.
func LoadConfig(workDir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("tools.ninja", defaults.Tools.Ninja)
	v.SetDefault("tools.grep", defaults.Tools.Grep)
	v.SetDefault("tools.cuobjdump", defaults.Tools.Cuobjdump)
	v.SetDefault("tools.cufilt", defaults.Tools.CuFilt)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workDir, ".kerncount"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !logging.ValidFormat(c.Logging.Format) {
		return &ConfigError{Field: "logging.format", Message: "must be json or human"}
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn or error"}
	}
	if c.Tools.Ninja == "" || c.Tools.Grep == "" || c.Tools.Cuobjdump == "" || c.Tools.CuFilt == "" {
		return &ConfigError{Field: "tools", Message: "tool names must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
