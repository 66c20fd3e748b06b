// Package config loads kestrel's user configuration.
//
// Precedence is flags > KESTREL_* environment variables > config file >
// defaults. Flags are applied by the commands package after Load returns.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "kestrel"
	// EnvPrefix prefixes every environment override, e.g. KESTREL_NPM.
	EnvPrefix = "KESTREL"

	fileName = "config"
	fileType = "yaml"
)

// Config is the resolved user configuration.
type Config struct {
	NPM       string `mapstructure:"npm"`
	NPX       string `mapstructure:"npx"`
	SkipHooks bool   `mapstructure:"skip_hooks"`
	Verbose   bool   `mapstructure:"verbose"`

	// Nil means the built-in dependency lists.
	Dependencies    []string `mapstructure:"dependencies"`
	DevDependencies []string `mapstructure:"dev_dependencies"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		NPM: "npm",
		NPX: "npx",
	}
}

// Dir returns $XDG_CONFIG_HOME/kestrel, defaulting to ~/.config/kestrel.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// FilePath returns the default config file location.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName+"."+fileType), nil
}

// Load reads configuration from path, or from FilePath when path is empty.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("npm", defaults.NPM)
	v.SetDefault("npx", defaults.NPX)
	v.SetDefault("skip_hooks", defaults.SkipHooks)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("dependencies")
	_ = v.BindEnv("dev_dependencies")

	explicit := path != ""
	if !explicit {
		var err error
		path, err = FilePath()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	resolved := path
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		resolved = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if !v.IsSet("dependencies") {
		cfg.Dependencies = nil
	}
	if !v.IsSet("dev_dependencies") {
		cfg.DevDependencies = nil
	}
	cfg.File = resolved

	return &cfg, nil
}
