// Package config loads process configuration from defaults, an optional
// config file and ITEMTRACKER_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "ITEMTRACKER"
	configName     = "itemtracker"
	defaultOwnerID = "local"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	// Owner is the identity every CLI command acts as.
	Owner string `mapstructure:"owner" validate:"required,max=450"`
}

type DatabaseConfig struct {
	// Path is a filesystem path or ":memory:".
	Path string `mapstructure:"path" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	// Format is "text", "json" or "auto" (text on a terminal, JSON otherwise).
	Format string `mapstructure:"format" validate:"required,oneof=auto text json"`
	// UseCases logs one line per service use case.
	UseCases bool `mapstructure:"use_cases"`
}

// SlogLevel maps Level onto slog. Unknown values fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DefaultDBPath returns ~/.itemtracker/itemtracker.db, or a path relative to
// the working directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".itemtracker", "itemtracker.db")
	}
	return filepath.Join(home, ".itemtracker", "itemtracker.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDBPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.use_cases", false)
	v.SetDefault("owner", defaultOwnerID)
}

// Load builds a Config. v may carry flag bindings made by the caller; nil
// means a fresh viper instance. When configFile is empty, itemtracker.{yaml,
// json,toml} is looked up in the working directory and ~/.itemtracker, and a
// missing file is not an error. An explicit configFile must exist.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".itemtracker"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
