package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Env holds settings read from the process environment rather than the
// reloadable config file: tokens and path overrides.
type Env struct {
	RunToken         string `env:"BOT_RUN_TOKEN"`
	DevelopmentToken string `env:"BOT_DEVELOPMENT_TOKEN"`
	Development      bool   `env:"BOT_DEVELOPMENT"`
	ConfigPath       string `env:"BOT_CONFIG"`
	StoragePath      string `env:"STORAGE_PATH" envDefault:"data/markov-bot.json"`
}

// LoadEnv loads .env if present and parses environment settings.
func LoadEnv() (*Env, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment")
	}

	e, err := env.ParseAs[Env]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if e.Token() == "" {
		return nil, errors.New("no bot token set: need BOT_RUN_TOKEN or BOT_DEVELOPMENT_TOKEN")
	}
	return &e, nil
}

// Token returns the Discord token for the selected mode.
func (e *Env) Token() string {
	if e.Development && e.DevelopmentToken != "" {
		return e.DevelopmentToken
	}
	return e.RunToken
}
