// Package config loads application configuration from defaults, an
// optional diary.yaml file, DIARY_-prefixed environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the diary server
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Sessions SessionsConfig `mapstructure:"sessions"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig selects and configures the persistent store
type StorageConfig struct {
	// Type is "memory" or "sqlite"
	Type string `mapstructure:"type"`
	// DSN is the SQLite database path (ignored for memory)
	DSN string `mapstructure:"dsn"`
}

// SessionsConfig selects and configures the session store
type SessionsConfig struct {
	// Type is "memory" or "redis"
	Type string `mapstructure:"type"`
	// RedisURL is the Redis connection URL (ignored for memory)
	RedisURL string `mapstructure:"redis_url"`
	// TTL is how long a session stays valid after login
	TTL time.Duration `mapstructure:"ttl"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":        "",
		"server.port":        8080,
		"storage.type":       "sqlite",
		"storage.dsn":        "diary.db",
		"sessions.type":      "memory",
		"sessions.redis_url": "redis://localhost:6379",
		"sessions.ttl":       7 * 24 * time.Hour,
	}
}

// Load builds the configuration for a command. An explicit config file
// path (from --config) takes precedence over the search path; a missing
// config file is not an error.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("diary")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("diary")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
