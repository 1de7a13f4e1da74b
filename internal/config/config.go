// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/validation"
)

// Config holds every runtime setting.
type Config struct {
	// Seed for the random source. 0 means a fresh seed from crypto/rand.
	Seed       int64  `env:"EMBERWOOD_SEED" envDefault:"0"`
	PlayerName string `env:"EMBERWOOD_PLAYER_NAME" validate:"omitempty,max=32"`

	LogLevel  string `env:"EMBERWOOD_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"EMBERWOOD_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	// The terminal belongs to the UI, so logs always go to a file.
	LogFile string `env:"EMBERWOOD_LOG_FILE" envDefault:"emberwood.log" validate:"required"`

	TelemetryEnabled bool `env:"EMBERWOOD_TELEMETRY" envDefault:"false"`

	// Chance that entering a location with enemies starts a fight at once.
	AmbushChance float64 `env:"EMBERWOOD_AMBUSH_CHANCE" envDefault:"0.1" validate:"gte=0,lte=1"`
}

// Load reads a .env file if one exists, then parses and validates the
// environment. It reports whether the .env file was loaded.
func Load() (Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, dotenv, err
	}
	if err := validation.Struct("config", cfg); err != nil {
		return Config{}, dotenv, err
	}
	if cfg.Seed == 0 {
		seed, err := NewSeed()
		if err != nil {
			return Config{}, dotenv, err
		}
		cfg.Seed = seed
	}
	return cfg, dotenv, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "parse env", err)
	}
	return nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUnknown, "read random seed", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Logger returns the logger settings.
func (c Config) Logger(version string) logger.Config {
	return logger.Config{
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		Version: version,
	}
}
