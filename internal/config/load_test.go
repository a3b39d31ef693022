package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
	return dir
}

// TestLoadDefaults verifies the defaults when no other source is present.
func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.False(t, cfg.Tasks.UniqueIDs)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.MCP.Enabled)
	assert.True(t, cfg.OpenAPI.Enabled)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TODO_SERVER_PORT", "9090")
	t.Setenv("TODO_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TODO_TASKS_UNIQUE_IDS", "true")
	t.Setenv("TODO_METRICS_ENABLED", "false")
	t.Setenv("TODO_MCP_ENABLED", "false")

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	assert.Equal(t, 9090, cfg.Server.Port, "Server port should be loaded from environment variables")
	assert.Equal(t, "debug", cfg.Server.LogLevel, "Log level should be loaded from environment variables")
	assert.True(t, cfg.Tasks.UniqueIDs)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.MCP.Enabled)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	content := []byte("server:\n  port: 7070\n  log_level: warn\ntasks:\n  unique_ids: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Run("discovered in working directory", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Server.LogLevel)
		assert.True(t, cfg.Tasks.UniqueIDs)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("TODO_SERVER_PORT", "6060")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Server.LogLevel)
	})
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 5050\n"), 0o600))

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Server.Port)

	_, err = Load(WithConfigFile(filepath.Join(dir, "missing.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithFlags(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TODO_SERVER_PORT", "9090")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 8080, "port")
	fs.String("log-level", "info", "log level")

	t.Run("unset flags do not override", func(t *testing.T) {
		cfg, err := Load(WithFlags(fs))
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		require.NoError(t, fs.Parse([]string{"--port", "3000", "--log-level", "error"}))

		cfg, err := Load(WithFlags(fs))
		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "error", cfg.Server.LogLevel)
	})
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name:           "Invalid port number",
			envVars:        map[string]string{"TODO_SERVER_PORT": "999999"},
			errorSubstring: "validation failed",
		},
		{
			name:           "Zero port",
			envVars:        map[string]string{"TODO_SERVER_PORT": "0"},
			errorSubstring: "validation failed",
		},
		{
			name:           "Invalid log level",
			envVars:        map[string]string{"TODO_SERVER_LOG_LEVEL": "invalid-level"},
			errorSubstring: "validation failed",
		},
		{
			name:           "Negative shutdown timeout",
			envVars:        map[string]string{"TODO_SERVER_SHUTDOWN_TIMEOUT_SECONDS": "-1"},
			errorSubstring: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), tc.errorSubstring, "Error message should contain expected substring")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
