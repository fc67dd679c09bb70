package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Verify.Enabled)
	assert.Equal(t, 10000, cfg.Verify.MaxSubsets)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, DefaultFiles, cfg.Files)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashira.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output: json
workers: 2
verify:
  enabled: true
  max_subsets: 25
logging:
  level: debug
files:
  - a.json
  - b.yaml
`), 0644))

	t.Setenv("HASHIRA_WORKERS", "8")
	t.Setenv("HASHIRA_LOGGING_FORMAT", "json")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Verify.Enabled)
	assert.Equal(t, 25, cfg.Verify.MaxSubsets)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"a.json", "b.yaml"}, cfg.Files)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Output:  "text",
			Workers: 1,
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad output", func(c *Config) { c.Output = "xml" }, "unknown output style"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "invalid workers"},
		{"negative subsets", func(c *Config) { c.Verify.MaxSubsets = -1 }, "invalid verify.max_subsets"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
