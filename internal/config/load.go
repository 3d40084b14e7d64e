package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "SCRY"

// defaults lists every configuration key with its default value. Keys must be
// registered here for AutomaticEnv to see them during Unmarshal.
var defaults = map[string]any{
	"log.level":                  "info",
	"log.format":                 "text",
	"store.driver":               "sqlite",
	"store.sqlite_path":          "",
	"store.database_url":         "",
	"stats.mature_interval_days": 21.0,
	"stats.week_horizon_days":    7,
	"stats.month_horizon_days":   30,
	"stats.histogram_bins":       5,
	"srs.decay":                  -0.5,
	"extract.skip_invalid":       false,
	"extract.workers":            4,
	"server.port":                8080,
	"server.allowed_origins":     []string{"*"},
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded into the environment first.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return LoadFrom("")
}

// LoadFrom works like Load but reads the given config file instead of
// searching for scry.yaml. An empty path searches the working directory and
// the default config directory; a missing file is not an error there. The
// .env file is not read.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
