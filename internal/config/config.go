// Package config collects runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8000"`
	LogDev bool   `env:"LOG_DEV" envDefault:"false"`

	// DataDir is where the file-backed document store keeps its JSON
	// documents. Ignored when DatabaseURL is set.
	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	DatabaseURL string `env:"DATABASE_URL"`

	CatalogDocument   string `env:"CATALOG_DOCUMENT" envDefault:"products"`
	FeedbackDocument  string `env:"FEEDBACK_DOCUMENT" envDefault:"feedback"`
	CustomersDocument string `env:"CUSTOMERS_DOCUMENT" envDefault:"loyalCustomers"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsToken   string `env:"METRICS_TOKEN"`

	WriteLimit  int           `env:"WRITE_LIMIT" envDefault:"30"`
	WriteWindow time.Duration `env:"WRITE_WINDOW" envDefault:"60s"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if c.WriteLimit < 1 {
		return Config{}, fmt.Errorf("WRITE_LIMIT must be positive, got %d", c.WriteLimit)
	}
	if c.WriteWindow <= 0 {
		return Config{}, fmt.Errorf("WRITE_WINDOW must be positive, got %s", c.WriteWindow)
	}

	return c, nil
}
