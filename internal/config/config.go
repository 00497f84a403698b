package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/validator"

	"github.com/ilyakaznacheev/cleanenv"
)

// Seats the computer can take.
const (
	ComputerX    = "X"
	ComputerO    = "O"
	ComputerNone = "none"
	ComputerBoth = "both"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	LogFile   string    `yaml:"log-file" env:"TTT_LOG_FILE"`
	Color     bool      `yaml:"color" env:"TTT_COLOR"`
	First     string    `yaml:"first" env:"TTT_FIRST" env-default:"X" validate:"mark"`
	Computer  string    `yaml:"computer" env:"TTT_COMPUTER" env-default:"O" validate:"oneof=X O none both"`
	Search    Search    `yaml:"search"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Search struct {
	Pruning bool `yaml:"pruning" env:"TTT_SEARCH_PRUNING"`
}

type Telemetry struct {
	Endpoint    string `yaml:"endpoint" env:"TTT_OTEL_ENDPOINT"`
	ServiceName string `yaml:"service-name" env:"TTT_SERVICE_NAME" env-default:"tic-tac-toe" validate:"required"`
}

// defaults holds the values cleanenv cannot default: it treats a false bool
// as unset and would overwrite it from env-default.
func defaults() *Config {
	return &Config{
		Color:  true,
		Search: Search{Pruning: true},
	}
}

// Load reads the config file at path, or only the environment when the file
// does not exist. Environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, cfg)
	} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		err = statErr
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad - load all configurations from the config file and environment.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) FirstMark() game.PlayerMark {
	return game.PlayerMark(c.First)
}

// ComputerPlays reports whether the computer sits in m's seat.
func (c *Config) ComputerPlays(m game.PlayerMark) bool {
	switch c.Computer {
	case ComputerBoth:
		return true
	case ComputerNone:
		return false
	default:
		return c.Computer == string(m)
	}
}
