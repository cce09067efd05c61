package docpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.StrictMode)
	assert.False(t, config.PreserveOnStream)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("DOCPACK_LOG_LEVEL", "debug")
	t.Setenv("DOCPACK_STRICT_MODE", "true")
	t.Setenv("DOCPACK_PRESERVE_ON_STREAM", "yes")

	config := ConfigFromEnvironment()
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.StrictMode)
	assert.True(t, config.PreserveOnStream)
}

func TestConfigFromEnvironment_Defaults(t *testing.T) {
	os.Unsetenv("DOCPACK_LOG_LEVEL")
	os.Unsetenv("DOCPACK_STRICT_MODE")
	os.Unsetenv("DOCPACK_PRESERVE_ON_STREAM")

	config := ConfigFromEnvironment()
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\nstrict_mode: true\n"), 0644))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
	assert.True(t, config.StrictMode)
	// Unset fields keep their defaults.
	assert.False(t, config.PreserveOnStream)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: [oops\n"), 0644))
		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))
		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error", "off"} {
		config := &Config{LogLevel: level}
		assert.NoError(t, config.Validate(), "level %q", level)
	}
	assert.Error(t, (&Config{LogLevel: "verbose"}).Validate())
}

func TestParseBool(t *testing.T) {
	for _, val := range []string{"1", "true", "TRUE", "yes", "on"} {
		assert.True(t, parseBool(val), "parseBool(%q)", val)
	}
	for _, val := range []string{"", "0", "false", "no", "off", "banana"} {
		assert.False(t, parseBool(val), "parseBool(%q)", val)
	}
}
