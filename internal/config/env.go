package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings that can come from the environment. Command-line
// flags default to these values.
type Env struct {
	ConfigPath   string `env:"BRICKFAST_CONFIG"`
	Difficulty   string `env:"BRICKFAST_DIFFICULTY" envDefault:"normal"`
	Seed         int64  `env:"BRICKFAST_SEED"`
	FPS          int    `env:"BRICKFAST_FPS" envDefault:"60"`
	LogLevel     string `env:"BRICKFAST_LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"BRICKFAST_LOG_FILE"`
	Levels       string `env:"BRICKFAST_LEVELS"`
	OTelEndpoint string `env:"BRICKFAST_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
