// internal/config/config.go
//
// Runtime configuration for the guess binary.
// Values come from the process environment, optionally seeded from a .env
// file in the working directory (godotenv never overrides variables that are
// already set).
//
// Environment variables:
//   LOG_LEVEL      zerolog level name (default "info")
//   LOG_FORMAT     "console" or "json" (default "console")
//   GUESS_MODE     "random" or "daily" (default "random")
//   DAILY_SALT     HMAC key for daily targets
//   GUESS_DB_PATH  SQLite file for finished games; empty disables history
//   GUESS_PLAYER   name recorded with CLI results (default "player")
//   PORT           HTTP port for `guess serve` (default "5175")
//   JWT_SECRET     HS256 key for game tokens
//   CLIENT_ORIGIN  allowed CORS origin

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

// Config holds all settings read from the environment.
type Config struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"console"`
	Mode         string `env:"GUESS_MODE" envDefault:"random"`
	DailySalt    string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	DBPath       string `env:"GUESS_DB_PATH"`
	Player       string `env:"GUESS_PLAYER" envDefault:"player"`
	Port         string `env:"PORT" envDefault:"5175"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads .env files (missing files are ignored) and then parses the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown enumerated values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRandom, ModeDaily:
	default:
		return fmt.Errorf("invalid GUESS_MODE %q: must be %q or %q", c.Mode, ModeRandom, ModeDaily)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be \"console\" or \"json\"", c.LogFormat)
	}
	return nil
}
