package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server reads from the environment.
// Players may stay 0, in which case the server prompts for it at startup.
type Config struct {
	TCPAddr  string `env:"TCP_ADDR" envDefault:":5555"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string `env:"DB_PATH" envDefault:"uno_game.db"`
	Players  int    `env:"PLAYERS" envDefault:"0"`
	DealSeed int64  `env:"DEAL_SEED" envDefault:"0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
