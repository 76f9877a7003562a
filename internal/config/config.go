package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig

	// DotEnvLoaded reports whether a .env file was found and applied.
	DotEnvLoaded bool
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:":8000"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	// Path is handed to the sqlite driver as-is, so ":memory:" and
	// "file:...?cache=shared" DSNs work too.
	Path         string `env:"DB_PATH" envDefault:"./places.db"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"1"`
	Echo         bool   `env:"DB_ECHO" envDefault:"false"`
}

type LogConfig struct {
	Dir   string `env:"LOG_DIR" envDefault:"logs"`
	Level string `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.DotEnvLoaded = loaded

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}
	if cfg.Database.MaxOpenConns < 1 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", cfg.Database.MaxOpenConns)
	}
	return &cfg, nil
}
