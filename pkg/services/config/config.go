// Package config loads the application configuration from an optional yaml
// file plus ENERFOLIO_* environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Backend struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Defaults struct {
	Meter string `mapstructure:"meter"`
	User  string `mapstructure:"user"`
}

type Config struct {
	Backend  Backend  `mapstructure:"backend"`
	Server   Server   `mapstructure:"server"`
	Defaults Defaults `mapstructure:"defaults"`
}

// Load reads configuration from path (yaml, optional when empty) and the
// environment. ENERFOLIO_BACKEND_BASE_URL overrides backend.base_url, and
// so on.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("backend.page_size", 1000)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("defaults.user", "user_001")

	v.SetEnvPrefix("ENERFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")

	return &cfg, nil
}
