// Package config loads runtime settings from BOSSJACK_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"bossjack/blackjack"
	"bossjack/store"
)

type Config struct {
	Store      string `env:"BOSSJACK_STORE" envDefault:"memory"`
	SQLitePath string `env:"BOSSJACK_SQLITE_PATH"`
	DSN        string `env:"BOSSJACK_DATABASE_DSN"`
	RedisAddr  string `env:"BOSSJACK_REDIS_ADDR" envDefault:"localhost:6379"`
	Profile    string `env:"BOSSJACK_PROFILE" envDefault:"default"`

	// Boss catalog file (.yaml/.yml/.json); empty uses the built-in one.
	Catalog string `env:"BOSSJACK_CATALOG"`

	Seed           int64  `env:"BOSSJACK_SEED"`
	Balance        uint64 `env:"BOSSJACK_BALANCE" envDefault:"100"`
	DiscardTokens  int    `env:"BOSSJACK_DISCARD_TOKENS" envDefault:"1"`
	DealerStandsOn int    `env:"BOSSJACK_DEALER_STANDS_ON" envDefault:"17"`

	Addr string        `env:"BOSSJACK_ADDR" envDefault:":18080"`
	Pace time.Duration `env:"BOSSJACK_PACE" envDefault:"250ms"`
	// Browser origins allowed on /ws; empty accepts any.
	AllowedOrigins []string `env:"BOSSJACK_ALLOWED_ORIGINS" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv parses and validates a Config.
func FromEnv() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DiscardTokens < 0 {
		return fmt.Errorf("BOSSJACK_DISCARD_TOKENS must be >= 0")
	}
	if c.DealerStandsOn < 1 || c.DealerStandsOn > 21 {
		return fmt.Errorf("BOSSJACK_DEALER_STANDS_ON must be within [1, 21]")
	}
	if c.Pace < 0 {
		return fmt.Errorf("BOSSJACK_PACE must be >= 0")
	}
	return nil
}

// StoreOptions maps the persistence settings onto store.Options.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Kind:       c.Store,
		Profile:    c.Profile,
		SQLitePath: c.SQLitePath,
		DSN:        c.DSN,
		RedisAddr:  c.RedisAddr,
	}
}

// GameConfig maps the round settings onto blackjack.Config.
func (c Config) GameConfig() blackjack.Config {
	return blackjack.Config{
		DealerStandsOn:  c.DealerStandsOn,
		StartingBalance: c.Balance,
		DiscardTokens:   c.DiscardTokens,
		Seed:            c.Seed,
	}
}
