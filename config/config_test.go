package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, uint64(100), cfg.Balance)
	assert.Equal(t, 1, cfg.DiscardTokens)
	assert.Equal(t, 250*time.Millisecond, cfg.Pace)
	assert.Empty(t, cfg.AllowedOrigins)

	gc := cfg.GameConfig()
	assert.Equal(t, 17, gc.DealerStandsOn)
	assert.Equal(t, uint64(100), gc.StartingBalance)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BOSSJACK_STORE", "sqlite")
	t.Setenv("BOSSJACK_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("BOSSJACK_PROFILE", "alice")
	t.Setenv("BOSSJACK_SEED", "42")
	t.Setenv("BOSSJACK_PACE", "1s")
	t.Setenv("BOSSJACK_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	opts := cfg.StoreOptions()
	assert.Equal(t, "sqlite", opts.Kind)
	assert.Equal(t, "/tmp/x.db", opts.SQLitePath)
	assert.Equal(t, "alice", opts.Profile)
	assert.Equal(t, int64(42), cfg.GameConfig().Seed)
	assert.Equal(t, time.Second, cfg.Pace)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestFromEnvErrors(t *testing.T) {
	t.Setenv("BOSSJACK_BALANCE", "lots")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")

	t.Setenv("BOSSJACK_BALANCE", "10")
	t.Setenv("BOSSJACK_DEALER_STANDS_ON", "30")
	_, err = FromEnv()
	assert.Error(t, err)
}
