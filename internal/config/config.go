package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Beastly713/hashira/pkg/format"
)

// EnvPrefix is prepended to every environment override, e.g. HASHIRA_OUTPUT.
const EnvPrefix = "HASHIRA"

// Config represents the complete command-line configuration
type Config struct {
	Output  string        `mapstructure:"output"`
	Workers int           `mapstructure:"workers"`
	Verify  VerifyConfig  `mapstructure:"verify"`
	Logging LoggingConfig `mapstructure:"logging"`
	Files   []string      `mapstructure:"files"`
}

// VerifyConfig controls the k-subset cross-check
type VerifyConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxSubsets int  `mapstructure:"max_subsets"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultFiles are solved when no file is named.
var DefaultFiles = []string{"testcase1.json", "testcase2.json"}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", string(format.StyleText))
	v.SetDefault("workers", 4)
	v.SetDefault("verify.enabled", false)
	v.SetDefault("verify.max_subsets", 10000)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("files", DefaultFiles)
}

// Load reads the optional config file, applies HASHIRA_* environment
// overrides and validates the result. An empty path searches for
// hashira.yaml in the working directory and $HOME/.config/hashira;
// a missing file there is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hashira")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/hashira")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := format.ParseStyle(c.Output); err != nil {
		return err
	}

	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d (must be at least 1)", c.Workers)
	}

	if c.Verify.MaxSubsets < 0 {
		return fmt.Errorf("invalid verify.max_subsets: %d (must be 0 for unlimited, or positive)", c.Verify.MaxSubsets)
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be trace, debug, info, warn, error, or disabled)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true, "console": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logging.Format)
	}

	return nil
}
