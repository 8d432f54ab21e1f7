package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding an optional YAML config file.
const EnvPath = "VOCABULL_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the study parameters.
type Config struct {
	WindowSize   int  `yaml:"window_size"`   // words quizzed at a time
	ChunkSize    int  `yaml:"chunk_size"`    // words per selectable learning set
	RepeatCount  int  `yaml:"repeat_count"`  // correct answers needed to memorize a word
	PenaltyCount int  `yaml:"penalty_count"` // retypes required after a wrong answer
	Debug        bool `yaml:"debug"`
	History      bool `yaml:"history"` // record sessions in a sidecar SQLite database
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		WindowSize:   10,
		ChunkSize:    100,
		RepeatCount:  3,
		PenaltyCount: 4,
		Debug:        false,
		History:      true,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads the file named by VOCABULL_CONFIG, or returns the defaults
// when the variable is unset.
func FromEnv() (Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Defaults(), nil
	}
	return Load(path)
}

// Validate checks that every size and count is usable.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"window_size", c.WindowSize},
		{"chunk_size", c.ChunkSize},
		{"repeat_count", c.RepeatCount},
		{"penalty_count", c.PenaltyCount},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, ch.name, ch.value)
		}
	}
	return nil
}
