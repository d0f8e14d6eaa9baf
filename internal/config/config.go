// Package config reads the program configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"atmbank/internal/pin"
)

// Config holds the startup parameters. State itself is process-memory
// only, so configuration covers presentation and the bootstrap
// administrator, not storage.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Locale    string `env:"LOCALE" envDefault:"en-US"`
	Currency  string `env:"CURRENCY" envDefault:"USD"`
	AdminName string `env:"ADMIN_NAME" envDefault:"Administrator"`
	AdminPIN  string `env:"ADMIN_PIN" envDefault:"0000"`
}

// Parse reads configuration from environment variables and applies
// defaults. The bootstrap administrator PIN must satisfy the normal PIN
// format.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := pin.ValidateFormat(cfg.AdminPIN); err != nil {
		return nil, fmt.Errorf("ADMIN_PIN: %w", err)
	}
	return cfg, nil
}
