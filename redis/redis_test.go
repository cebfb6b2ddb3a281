package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lshstore"
	"github.com/hupe1980/lshstore/dict"
	_ "github.com/hupe1980/lshstore/redis"
	"github.com/hupe1980/lshstore/testutil"
)

func openStore(t *testing.T, addr string, index int, opts ...lshstore.Option) lshstore.Store {
	t.Helper()

	store, err := lshstore.Open(context.Background(), lshstore.Config{
		Redis: &lshstore.RedisConfig{Addr: addr},
	}, index, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore_Contract(t *testing.T) {
	testutil.Suite{
		Open: func(t *testing.T) lshstore.Store {
			srv := miniredis.RunT(t)
			return openStore(t, srv.Addr(), 0)
		},
		OrderedLists: true,
		SingleValue:  true,
	}.Run(t)
}

func TestRedisStore_AppendRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	store := openStore(t, srv.Addr(), 0)
	ctx := context.Background()

	want := testutil.Entry("a", 1, 2, 3)
	require.NoError(t, store.AppendValue(ctx, "bucket1", want))

	list, err := store.GetList(ctx, "bucket1")
	require.NoError(t, err)
	require.Equal(t, []any{want}, list)
}

func TestRedisStore_KeysMatching(t *testing.T) {
	srv := miniredis.RunT(t)
	store := openStore(t, srv.Addr(), 0)
	ctx := context.Background()

	require.NoError(t, store.AppendValue(ctx, "bucket-0", testutil.Entry("a", 1)))
	require.NoError(t, store.AppendValue(ctx, "bucket-1", testutil.Entry("b", 2)))
	require.NoError(t, store.SetValue(ctx, "meta", "m"))

	matched, err := store.(lshstore.GlobKeyser).KeysMatching(ctx, "bucket-*")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"bucket-0", "bucket-1"}, matched)
}

func TestRedisStore_CorruptEntryDoesNotHideOthers(t *testing.T) {
	srv := miniredis.RunT(t)
	store := openStore(t, srv.Addr(), 0)
	ctx := context.Background()

	require.NoError(t, store.AppendValue(ctx, "k", testutil.Entry("a", 1)))

	// Inject bytes that were never produced by the seeded compressor.
	_, err := srv.Push("k", "garbage")
	require.NoError(t, err)

	require.NoError(t, store.AppendValue(ctx, "k", testutil.Entry("b", 2)))

	list, err := store.GetList(ctx, "k")
	require.ErrorIs(t, err, dict.ErrDecode)
	require.Equal(t, []any{testutil.Entry("a", 1), testutil.Entry("b", 2)}, list)
}

func TestRedisStore_IndexSelectsDatabase(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	store1 := openStore(t, srv.Addr(), 1)
	store2 := openStore(t, srv.Addr(), 2)

	require.NoError(t, store1.AppendValue(ctx, "k", testutil.Entry("a", 1)))

	list, err := store2.GetList(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRedisStore_SeedMismatchIsNotReadable(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	writer := openStore(t, srv.Addr(), 0)
	require.NoError(t, writer.AppendValue(ctx, "k", testutil.Entry("a", 1, 2, 3)))

	reader := openStore(t, srv.Addr(), 0, lshstore.WithSeed("a different seed payload"))
	list, err := reader.GetList(ctx, "k")
	// A mismatched seed either fails to decode or reconstructs
	// something other than the original entry; it never round-trips.
	if err == nil {
		require.NotEqual(t, []any{testutil.Entry("a", 1, 2, 3)}, list)
	}
}

func TestOpen_UnreachableServer(t *testing.T) {
	_, err := lshstore.Open(context.Background(), lshstore.Config{
		Redis: &lshstore.RedisConfig{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
		},
	}, 0)
	require.Error(t, err)
}
