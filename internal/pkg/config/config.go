// Package config loads process configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the storefront's process configuration.
type Config struct {
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"./data/storefront.db"`
	RedisAddr   string        `env:"REDIS_ADDR"` // empty disables the catalog cache
	CatalogTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	AdminToken  string        `env:"ADMIN_TOKEN"` // empty disables /admin
	ServiceName string        `env:"OTEL_SERVICE_NAME" envDefault:"pizza-storefront"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
