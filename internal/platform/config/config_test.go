package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DefaultNetwork, cfg.Network.Name)
	assert.True(t, cfg.Network.IsDefault())
	assert.Equal(t, 1, cfg.Sweep.Concurrency)
	assert.Equal(t, 3, cfg.Sweep.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.Sweep.RetryStep)
	assert.Equal(t, 100*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Cache.ProviderMetadataTTL)
	assert.Equal(t, time.Hour, cfg.Cache.AggregateTTL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("KEYPROOF_NETWORK_NAME", "devnet")
	t.Setenv("KEYPROOF_SWEEP_CONCURRENCY", "4")
	t.Setenv("KEYPROOF_GITHUB_TOKEN", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "devnet", cfg.Network.Name)
	assert.False(t, cfg.Network.IsDefault())
	assert.Equal(t, 4, cfg.Sweep.Concurrency)
	assert.Equal(t, "secret", cfg.Github.Token)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyproof.yaml")
	body := []byte("network:\n  name: testnet\nfanout:\n  limit: 8\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.Network.Name)
	assert.Equal(t, 8, cfg.Fanout.Limit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("KEYPROOF_SWEEP_CONCURRENCY", "0")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep.concurrency")
}
