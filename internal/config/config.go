// Package config loads application configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	HTTPAddr string `yaml:"http_addr"`

	// Storage backends. UseMemory switches every store to the in-memory
	// implementations, for local runs without infrastructure.
	UseMemory     bool   `yaml:"use_memory"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
	RedisAddr     string `yaml:"redis_addr"`

	// Scheduled recommendation runs
	RunInterval time.Duration `yaml:"run_interval"`

	// Report output
	OutputDir string `yaml:"output_dir"`

	// Engine tuning
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig tunes the TACOS control context.
type EngineConfig struct {
	// TmaxCap bounds the theoretical maximum TACOS.
	TmaxCap float64 `yaml:"tmax_cap"`
	// Epsilon is the zero-division floor for the TACOS delta.
	Epsilon float64 `yaml:"epsilon"`
}

// DefaultConfig returns the default configuration. The database DSNs carry
// no default; they must come from the file, the environment or flags, so
// callers can distinguish "unconfigured" from a real endpoint.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:  ":8080",
		UseMemory: false,
		RedisAddr: "localhost:6379",
		RunInterval:   time.Hour,
		OutputDir:     "reports",
		Engine: EngineConfig{
			TmaxCap: 0.7,
			Epsilon: 0.01,
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides overrides DSNs and addresses from the environment.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		c.ClickhouseDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
}

// Validate checks the tunables that would silently break recommendations.
func (c *Config) Validate() error {
	if c.Engine.TmaxCap <= 0 || c.Engine.TmaxCap > 1 {
		return fmt.Errorf("engine.tmax_cap must be in (0, 1], got %v", c.Engine.TmaxCap)
	}
	if c.Engine.Epsilon <= 0 {
		return fmt.Errorf("engine.epsilon must be positive, got %v", c.Engine.Epsilon)
	}
	if c.RunInterval <= 0 {
		return fmt.Errorf("run_interval must be positive, got %v", c.RunInterval)
	}
	return nil
}
