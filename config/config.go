// Package config loads tripmesh runtime configuration from YAML with
// environment variable overrides. Every field has a safe default, so an empty
// config is fully usable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level tripmesh configuration.
type Config struct {
	Orchestrator OrchestratorSettings `yaml:"orchestrator"`
	Tools        ToolSettings         `yaml:"tools"`
	Logging      LoggingSettings      `yaml:"logging"`
}

// OrchestratorSettings bounds the planning loop.
type OrchestratorSettings struct {
	MaxSteps   int    `yaml:"max_steps"`
	RetryLimit int    `yaml:"retry_limit"`
	StallLimit int    `yaml:"stall_limit"`
	Timeout    string `yaml:"timeout"`
}

// ToolSettings configures the tool runtime.
type ToolSettings struct {
	Timeout string `yaml:"timeout"`
}

// LoggingSettings configures the structured logger.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Orchestrator: OrchestratorSettings{
			MaxSteps:   10,
			RetryLimit: 2,
			StallLimit: 3,
			Timeout:    "60s",
		},
		Tools: ToolSettings{
			Timeout: "10s",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file, overlays defaults for unset fields, applies
// environment overrides, and validates the result. An empty path skips the
// file and yields defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: unmarshal %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays TRIPMESH_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v, ok := envInt("TRIPMESH_MAX_STEPS"); ok {
		c.Orchestrator.MaxSteps = v
	}
	if v, ok := envInt("TRIPMESH_RETRY_LIMIT"); ok {
		c.Orchestrator.RetryLimit = v
	}
	if v, ok := envInt("TRIPMESH_STALL_LIMIT"); ok {
		c.Orchestrator.StallLimit = v
	}
	if v := os.Getenv("TRIPMESH_TIMEOUT"); v != "" {
		c.Orchestrator.Timeout = v
	}
	if v := os.Getenv("TRIPMESH_TOOL_TIMEOUT"); v != "" {
		c.Tools.Timeout = v
	}
	if v := os.Getenv("TRIPMESH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TRIPMESH_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate enforces structural correctness before runtime.
func (c Config) Validate() error {
	if c.Orchestrator.MaxSteps < 1 {
		return fmt.Errorf("config: orchestrator.max_steps must be at least 1, got %d", c.Orchestrator.MaxSteps)
	}
	if c.Orchestrator.RetryLimit < 0 {
		return fmt.Errorf("config: orchestrator.retry_limit must not be negative, got %d", c.Orchestrator.RetryLimit)
	}
	if c.Orchestrator.StallLimit < 2 {
		return fmt.Errorf("config: orchestrator.stall_limit must be at least 2, got %d", c.Orchestrator.StallLimit)
	}
	if _, err := time.ParseDuration(c.Orchestrator.Timeout); err != nil {
		return fmt.Errorf("config: invalid orchestrator.timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Tools.Timeout); err != nil {
		return fmt.Errorf("config: invalid tools.timeout: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// OrchestratorTimeout returns the parsed orchestrator timeout. Call after
// Validate.
func (c Config) OrchestratorTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Orchestrator.Timeout)
	return d
}

// ToolTimeout returns the parsed tool timeout. Call after Validate.
func (c Config) ToolTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Tools.Timeout)
	return d
}
