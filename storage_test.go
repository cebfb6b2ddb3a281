package lshstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lshstore"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()

	store, err := lshstore.Open(ctx, lshstore.Config{Memory: &lshstore.MemoryConfig{}}, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.IsType(t, &lshstore.MemoryStore{}, store)
}

func TestOpen_NoBackendSelected(t *testing.T) {
	_, err := lshstore.Open(context.Background(), lshstore.Config{}, 0)

	var cfgErr *lshstore.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Empty(t, cfgErr.Selected)
}

func TestOpen_MultipleBackendsSelected(t *testing.T) {
	// The config error must surface before any connection attempt, so
	// an unroutable redis address must never be dialed.
	cfg := lshstore.Config{
		Memory: &lshstore.MemoryConfig{},
		Redis:  &lshstore.RedisConfig{Addr: "203.0.113.1:1"},
	}

	_, err := lshstore.Open(context.Background(), cfg, 0)

	var cfgErr *lshstore.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.ElementsMatch(t, []string{lshstore.KindMemory, lshstore.KindRedis}, cfgErr.Selected)
}

func TestOpen_MissingDriver(t *testing.T) {
	// This test binary does not import the redis driver package.
	cfg := lshstore.Config{Redis: &lshstore.RedisConfig{Addr: "localhost:6379"}}

	_, err := lshstore.Open(context.Background(), cfg, 0)

	var missing *lshstore.MissingDriverError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, lshstore.KindRedis, missing.Kind)
	require.Contains(t, missing.ImportPath, "lshstore/redis")
	require.Contains(t, missing.Error(), missing.ImportPath)
}

func TestOpen_UnknownCodec(t *testing.T) {
	cfg := lshstore.Config{
		Memory: &lshstore.MemoryConfig{},
		Codec:  "msgpack",
	}

	_, err := lshstore.Open(context.Background(), cfg, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "msgpack")
}

func TestOpen_NamedCodec(t *testing.T) {
	cfg := lshstore.Config{
		Memory: &lshstore.MemoryConfig{},
		Codec:  "json",
	}

	store, err := lshstore.Open(context.Background(), cfg, 0)
	require.NoError(t, err)
	_ = store.Close()
}
