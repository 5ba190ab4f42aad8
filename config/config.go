// Package config loads runtime settings for the surql driver and CLI from the
// environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/zoobzio/surql"
)

// Config holds the settings shared by the driver and the CLI.
type Config struct {
	Engine      string `env:"SURQL_ENGINE" envDefault:"surrealdb"`
	DSN         string `env:"SURQL_DSN"`
	LogLevel    string `env:"SURQL_LOG_LEVEL" envDefault:"info"`
	CheckSchema bool   `env:"SURQL_CHECK_SCHEMA" envDefault:"true"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the engine and log level are known.
func (c Config) Validate() error {
	if _, err := surql.ParseEngine(c.Engine); err != nil {
		return fmt.Errorf("SURQL_ENGINE: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("SURQL_LOG_LEVEL: %w", err)
	}
	return nil
}

// EngineValue returns the parsed engine. Call Validate first.
func (c Config) EngineValue() surql.Engine {
	e, _ := surql.ParseEngine(c.Engine)
	return e
}

// ApplyLogLevel sets the standard logger's level from LogLevel.
func (c Config) ApplyLogLevel() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}
