package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    CatalogURL string        `env:"CATALOG_URL" envDefault:"https://fakestoreapi.com/products"`
//	    Timeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// LoadWithOverrides parses environment variables into cfg, using the given
// key/value pairs in place of the process environment for matching keys.
// Command-line flags are mapped onto config this way.
func LoadWithOverrides(cfg any, overrides map[string]string) error {
	opts := env.Options{Environment: env.ToMap(environ())}
	for k, v := range overrides {
		if v != "" {
			opts.Environment[k] = v
		}
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
