package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/abdu61/TicTacToe/internal/validator"
	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultPath = "config.yml"

type Config struct {
	HTTPAddr          string        `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080" validate:"required"`
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	RedisAddr         string        `yaml:"redis-addr" env:"REDIS_ADDR"`
	OTLPEndpoint      string        `yaml:"otlp-endpoint" env:"OTLP_ENDPOINT"`
	ComputerMoveDelay time.Duration `yaml:"computer-move-delay" env:"COMPUTER_MOVE_DELAY" env-default:"500ms" validate:"gte=0s"`
	DefaultDifficulty string        `yaml:"default-difficulty" env:"DEFAULT_DIFFICULTY" env-default:"medium" validate:"difficulty"`
	DefaultRounds     int           `yaml:"default-rounds" env:"DEFAULT_ROUNDS" env-default:"1" validate:"gte=1"`
}

// Path returns CONFIG_PATH, or DefaultPath when it is unset.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path, then applies environment overrides.
// A missing file is not an error: defaults and the environment are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	case err == nil:
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config %s: %w", path, err)
	}

	if err := validator.GetValidator().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
