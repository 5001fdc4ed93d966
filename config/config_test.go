package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Orchestrator.MaxSteps)
	assert.Equal(t, 2, cfg.Orchestrator.RetryLimit)
	assert.Equal(t, 3, cfg.Orchestrator.StallLimit)
	assert.Equal(t, 60*time.Second, cfg.OrchestratorTimeout())
	assert.Equal(t, 10*time.Second, cfg.ToolTimeout())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripmesh.yaml")
	content := []byte(`
orchestrator:
  max_steps: 20
  timeout: 2m
logging:
  format: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Orchestrator.MaxSteps)
	assert.Equal(t, 2*time.Minute, cfg.OrchestratorTimeout())
	assert.Equal(t, "json", cfg.Logging.Format)
	// Unset fields keep defaults.
	assert.Equal(t, 2, cfg.Orchestrator.RetryLimit)
	assert.Equal(t, 10*time.Second, cfg.ToolTimeout())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIPMESH_MAX_STEPS", "7")
	t.Setenv("TRIPMESH_TIMEOUT", "90s")
	t.Setenv("TRIPMESH_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Orchestrator.MaxSteps)
	assert.Equal(t, 90*time.Second, cfg.OrchestratorTimeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("orchestrator:\n  max_steps: 20\n"), 0o600))
	t.Setenv("TRIPMESH_MAX_STEPS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Orchestrator.MaxSteps)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero max steps", func(c *Config) { c.Orchestrator.MaxSteps = 0 }},
		{"negative retry limit", func(c *Config) { c.Orchestrator.RetryLimit = -1 }},
		{"stall limit too low", func(c *Config) { c.Orchestrator.StallLimit = 1 }},
		{"bad timeout", func(c *Config) { c.Orchestrator.Timeout = "soon" }},
		{"bad tool timeout", func(c *Config) { c.Tools.Timeout = "whenever" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
