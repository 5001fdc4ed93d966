package tripmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/config"
	"github.com/hupe1980/tripmesh/logging"
)

func TestNew_BuildsLoggerFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "text"

	tm := New(func(o *Options) { o.Config = cfg })

	require.NotNil(t, tm.opts.Logger)
	assert.IsType(t, &logging.SlogAdapter{}, tm.opts.Logger)
}

func TestNew_ExplicitLoggerWins(t *testing.T) {
	tm := New(func(o *Options) { o.Logger = logging.NoOpLogger{} })

	assert.IsType(t, logging.NoOpLogger{}, tm.opts.Logger)
}
