package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./outputs", cfg.OutputDir)
	assert.Equal(t, "./templates/baseEDI.XML", cfg.TemplatePath)
	assert.Equal(t, "WAITROSE_{cust_order}.XML", cfg.OutputFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.ValidateBeforeProcess)
	assert.Empty(t, cfg.ReportDir)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/in
output_dir: /data/out
template_path: /data/templates/baseEDI.XML
output_format: "WAITROSE_{cust_order}.XML"
log_level: debug
report_dir: /data/reports
validate_before_process: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/data/reports", cfg.ReportDir)
	assert.False(t, cfg.ValidateBeforeProcess)

	// Unset settings fall back to defaults.
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "./output_archive", cfg.OutputArchiveDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "input_dir: [broken\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log_level")
}
