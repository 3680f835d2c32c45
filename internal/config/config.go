// Package config reads harmony's settings from config.yaml, HARMONY_*
// environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/harmony/internal/constants"
	apperrors "github.com/julianstephens/harmony/internal/errors"
	"github.com/julianstephens/harmony/internal/keyring"
	"github.com/julianstephens/harmony/internal/logger"
)

const envPrefix = "HARMONY"

type Models struct {
	Routine   string `mapstructure:"routine" validate:"required"`
	Breakdown string `mapstructure:"breakdown" validate:"required"`
	Chat      string `mapstructure:"chat" validate:"required"`
}

type Auth struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type Sync struct {
	Schedule string `mapstructure:"schedule" validate:"required"`
}

type Config struct {
	Models   Models `mapstructure:"models"`
	Auth     Auth   `mapstructure:"auth"`
	Sync     Sync   `mapstructure:"sync"`
	Timezone string `mapstructure:"timezone"`
	// File is the config file that was read, empty when none exists.
	File string `mapstructure:"-"`
}

var validate = validator.New()

// Load reads <configDir>/config.yaml if present. Environment variables such
// as HARMONY_MODELS_CHAT or HARMONY_AUTH_CLIENT_ID override file values.
func Load(configDir string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to read .env", "error", err)
	}

	v := newViper(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetDefault("models.routine", constants.DefaultRoutineModel)
	v.SetDefault("models.breakdown", constants.DefaultBreakdownModel)
	v.SetDefault("models.chat", constants.DefaultChatModel)
	v.SetDefault("sync.schedule", constants.DefaultSyncSchedule)
	v.SetDefault("auth.client_id", "")
	v.SetDefault("auth.client_secret", "")
	v.SetDefault("timezone", "")

	v.SetConfigFile(filepath.Join(configDir, constants.DefaultConfigFile))
	v.SetConfigType("yaml")
	return v
}

// WriteDefault writes a config.yaml holding the defaults unless one exists.
// It reports whether a file was written.
func WriteDefault(configDir string) (string, bool, error) {
	path := filepath.Join(configDir, constants.DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := newViper(configDir).WriteConfigAs(path); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// Location returns the configured timezone, local time when unset.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolveAPIKey prefers an explicit key (flag or API_KEY) and falls back to
// the keyring.
func ResolveAPIKey(explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", apperrors.ErrMissingAPIKey
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrMissingAPIKey, err)
	}
	return key, nil
}
