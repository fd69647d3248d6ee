package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PF_LOG_LEVEL",
		"PF_LOG_FORMAT",
		"PF_INSTITUTIONS_CONFIG_FILE",
		"PF_OUTPUT_DIRECTORY",
		"PF_BATCH_WORKERS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(original))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "institutions.yaml", config.Institutions.ConfigFile)
	assert.Equal(t, "output", config.Output.Directory)
	assert.Equal(t, 0, config.Batch.Workers)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("PF_LOG_LEVEL", "debug")
	t.Setenv("PF_LOG_FORMAT", "json")
	t.Setenv("PF_OUTPUT_DIRECTORY", "parsed")
	t.Setenv("PF_BATCH_WORKERS", "4")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "parsed", config.Output.Directory)
	assert.Equal(t, 4, config.Batch.Workers)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
institutions:
  config_file: "conf/institutions.yaml"
batch:
  workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "conf/institutions.yaml", config.Institutions.ConfigFile)
	assert.Equal(t, 2, config.Batch.Workers)
}

func TestInitializeConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "PF_LOG_LEVEL", "verbose"},
		{"bad log format", "PF_LOG_FORMAT", "xml"},
		{"negative workers", "PF_BATCH_WORKERS", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearTestEnvVars(t)
			chdir(t, t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := &Config{}
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(config)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	config.Log.Level = "not-a-level"
	config.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
