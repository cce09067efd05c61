package docpack

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config contains all configuration options for docpack
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// StrictMode makes Open fail when a loaded package already violates its
	// structural invariants, instead of logging a warning and continuing.
	StrictMode bool `yaml:"strict_mode"`
	// PreserveOnStream controls the default macro handling when saving to a
	// stream without an explicit flag. False (the default) strips macros,
	// matching the behavior of stream saves with no destination name.
	PreserveOnStream bool `yaml:"preserve_on_stream"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		StrictMode:       false,
		PreserveOnStream: false,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// DOCPACK_LOG_LEVEL
	if val := os.Getenv("DOCPACK_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// DOCPACK_STRICT_MODE
	if val := os.Getenv("DOCPACK_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	// DOCPACK_PRESERVE_ON_STREAM
	if val := os.Getenv("DOCPACK_PRESERVE_ON_STREAM"); val != "" {
		config.PreserveOnStream = parseBool(val)
	}

	return config
}

// LoadConfigFile reads a YAML configuration file and applies it on top of the
// environment-derived configuration. Unset fields keep their prior values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := ConfigFromEnvironment()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error", "off":
	default:
		return errors.New("log level must be one of: debug, info, warn, error, off")
	}
	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()
	return globalConfig
}

// SetGlobalConfig replaces the global configuration
func SetGlobalConfig(config *Config) {
	if config == nil {
		return
	}
	GetGlobalConfig()
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()
	UpdateLoggerFromConfig()
}

func parseBool(val string) bool {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
