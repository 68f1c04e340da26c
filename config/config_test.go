package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Client.APIBaseURL)
	assert.Equal(t, 30, cfg.Client.RequestTimeout)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.True(t, cfg.Server.SeedData)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.example.com")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("TOKEN_TTL_HOURS", "24")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://api.example.com", cfg.Client.APIBaseURL)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.False(t, cfg.Server.SeedData)
	assert.Equal(t, 24, cfg.Server.TokenTTL)
}
