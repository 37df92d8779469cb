package config

import (
	"errors"
	"fmt"
)

type Config struct {
	DataFile string            `yaml:"data_file"`
	MaxDepth int               `yaml:"max_depth"`
	LogLevel string            `yaml:"log_level"`
	Workers  int               `yaml:"workers"`
	Labels   map[string]string `yaml:"labels"` // catalog overrides, "" removes
}

func Default() *Config {
	return &Config{
		DataFile: "public/ai_behavior_data.json",
		MaxDepth: 10,
		LogLevel: "info",
		Workers:  8,
	}
}

var ErrInvalid = errors.New("invalid config")

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must be >= 0, got %d", ErrInvalid, c.MaxDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	return nil
}
