package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "crud_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_TTL_SECONDS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "crud_test", cfg.MongoDB.Database)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, 5*time.Second, cfg.Cache.TTL)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:3000", cfg.Addr())
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, 5, cfg.MongoDB.ConnectAttempts)
	require.False(t, cfg.Redis.Enabled())
	require.True(t, errors.Is(cfg.Validate(), ErrMissingMongoURI))
}
