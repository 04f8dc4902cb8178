package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"othello-engine/engine"
	"othello-engine/tuner"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Depth       int    `json:"depth"`
	MaxDepth    int    `json:"max_depth"`
	WeightsPath string `json:"weights_path"`
	LogLevel    string `json:"log_level"`
	LogPretty   bool   `json:"log_pretty"`
	ListenAddr  string `json:"listen_addr"`
}

func DefaultConfig() Config {
	return Config{
		Depth:      8,
		MaxDepth:   engine.MaxDepth,
		LogLevel:   "info",
		LogPretty:  true,
		ListenAddr: ":8080",
	}
}

// Load reads a JSON config over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > engine.MaxDepth {
		return fmt.Errorf("%w: max_depth %d outside 1..%d", ErrInvalidConfig, c.MaxDepth, engine.MaxDepth)
	}
	if c.Depth < 1 || c.Depth > c.MaxDepth {
		return fmt.Errorf("%w: depth %d outside 1..%d", ErrInvalidConfig, c.Depth, c.MaxDepth)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Weights returns the evaluation table named by WeightsPath, or the built-in
// table when none is set.
func (c Config) Weights() (engine.Weights, error) {
	if c.WeightsPath == "" {
		return engine.DefaultWeights, nil
	}
	return tuner.LoadWeights(c.WeightsPath)
}

// ClampDepth bounds a requested depth by MaxDepth. Zero or negative
// requests fall back to Depth.
func (c Config) ClampDepth(d int) int {
	if d <= 0 {
		return c.Depth
	}
	return min(d, c.MaxDepth)
}
