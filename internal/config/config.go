package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
}

// DatabaseConfig holds the sqlite settings. SoftDelete selects flagged
// deletion over physical removal; it is read once at store construction
// and never changes for the lifetime of an open handle.
type DatabaseConfig struct {
	Path       string
	SoftDelete bool
}

// Load reads configuration from file and env. Env var overrides use
// prefix FINTRACKER_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "fintracker", "fintracker.db"))
	v.SetDefault("database.soft_delete", true)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fintracker"))
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return Config{
		Database: DatabaseConfig{
			Path:       v.GetString("database.path"),
			SoftDelete: v.GetBool("database.soft_delete"),
		},
	}, nil
}
