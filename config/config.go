// Package config loads the game settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Rows     int           `yaml:"rows" env:"MATRIX_ROWS" env-default:"10"`
	Cols     int           `yaml:"cols" env:"MATRIX_COLS" env-default:"10"`
	CellSize int           `yaml:"cell-size" env:"MATRIX_CELL_SIZE" env-default:"32"`
	Seed     uint64        `yaml:"seed" env:"MATRIX_SEED" env-default:"0"`
	Tick     time.Duration `yaml:"tick" env:"MATRIX_TICK" env-default:"800ms"`
	NoColor  bool          `yaml:"no-color" env:"MATRIX_NO_COLOR" env-default:"false"`
	Log      Log           `yaml:"log"`
	Server   Server        `yaml:"server"`
}

type Log struct {
	Level  string `yaml:"level" env:"MATRIX_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"MATRIX_LOG_FORMAT" env-default:"text"`
}

type Server struct {
	Addr string `yaml:"addr" env:"MATRIX_ADDR" env-default:":9000"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Load reads the config file at path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Rows < 4 || c.Cols < 4:
		return fmt.Errorf("%w: matrix of %dx%d is smaller than 4x4", ErrInvalidConfig, c.Rows, c.Cols)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	case c.Tick <= 0:
		return fmt.Errorf("%w: tick must be positive, got %v", ErrInvalidConfig, c.Tick)
	}
	return nil
}

// RandSeed returns the configured seed, or one taken from the clock when it's 0.
func (c *Config) RandSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano()) //nolint:gosec
}
