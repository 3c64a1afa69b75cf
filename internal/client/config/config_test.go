package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:4000/graphql", c.GraphQLEndpoint)
	assert.Equal(t, "cinema.db", c.StateDBPath)
	assert.Equal(t, 12, c.PageSize)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "en", c.Locale)
	assert.Empty(t, c.MetricsAddr)
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cli"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:4000/graphql", cfg.GraphQLEndpoint)
	assert.Equal(t, 12, cfg.PageSize)
}
