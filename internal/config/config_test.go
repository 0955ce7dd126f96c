package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(8085), cfg.HttpServerPort)
	assert.Equal(t, 10, cfg.CountdownStart)
	assert.Equal(t, 1000, cfg.TickIntervalMs)
	assert.Equal(t, 5, cfg.ResetDelaySeconds)
	assert.Equal(t, 4, cfg.ButtonCount)
	assert.Equal(t, 4, cfg.DefaultMaxUsers)
	assert.Equal(t, 500, cfg.MaxMessageLen)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COUNTDOWN_START", "30")
	t.Setenv("BUTTON_COUNT", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.CountdownStart)
	assert.Equal(t, 1, cfg.ButtonCount)
}

func TestValidationFailures(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "80") // below the allowed range

	_, err := LoadConfig()
	require.Error(t, err)
}
