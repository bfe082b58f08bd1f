// Package config loads CLI configuration from a config file, flags and the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Config keys shared by viper, flags and the config file.
const (
	KeyLocale      = "locale"
	KeySettingsDir = "settings_dir"
	KeyBuiltins    = "builtins"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

type Config struct {
	Locale      string `mapstructure:"locale" env:"GACT_LOCALE"`
	SettingsDir string `mapstructure:"settings_dir" env:"GACT_SETTINGS_DIR"`
	Builtins    bool   `mapstructure:"builtins" env:"GACT_BUILTINS"`
	LogLevel    string `mapstructure:"log_level" env:"GACT_LOG_LEVEL"`
	LogFormat   string `mapstructure:"log_format" env:"GACT_LOG_FORMAT"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLocale, "en-US")
	v.SetDefault(KeySettingsDir, "./settings")
	v.SetDefault(KeyBuiltins, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads the config file (when given, or gact.yaml in the working directory
// or home directory) into v and overlays GACT_* environment variables.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("gact")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays environment variables on target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
