// Package config loads application settings from a YAML file and the
// environment. Environment variables use the RUNLOG_ prefix and
// override file values (RUNLOG_SERVER_PORT, RUNLOG_STRAVA_CLIENT_ID, ...).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Strava StravaConfig `mapstructure:"strava"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	BaseURL     string   `mapstructure:"base_url"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// StravaConfig holds the OAuth application credentials. Both fields are
// optional; without them the import endpoints report "not configured".
type StravaConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// Configured reports whether Strava credentials are present
func (c StravaConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Load reads configuration from the given file path, or from the
// default search paths when path is empty. A missing config file is
// fine; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("db.path", defaultDBPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".runlog"))
		}
	}

	v.SetEnvPrefix("RUNLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks for values no deployment can run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db path must not be empty")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// Addr returns the listen address, e.g. ":8080"
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data.db"
	}
	return filepath.Join(home, ".runlog", "data.db")
}
