package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.True(t, cfg.Export.ExcelBOM)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
logging:
  level: debug
  output: both
  file_path: logs/custom.log
export:
  format: parquet
`), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/custom.log", cfg.Logging.FilePath)
	assert.Equal(t, "parquet", cfg.Export.Format)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: warn\n"), 0644))

	t.Setenv("BATT_LOGGING_LEVEL", "error")

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad level", yaml: "logging:\n  level: loud\n"},
		{name: "bad output", yaml: "logging:\n  output: syslog\n"},
		{name: "bad format", yaml: "export:\n  format: feather\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			configFile := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.yaml), 0644))

			_, err := LoadFrom(configFile)
			assert.Error(t, err)
		})
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging: ["), 0644))

	_, err := LoadFrom(configFile)
	assert.Error(t, err)
}
