package lshstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lshstore"
	"github.com/hupe1980/lshstore/testutil"
)

func TestMemoryStore_Contract(t *testing.T) {
	testutil.Suite{
		Open: func(t *testing.T) lshstore.Store {
			return lshstore.NewMemoryStore()
		},
		OrderedLists: true,
		SingleValue:  true,
	}.Run(t)
}

func TestMemoryStore_AppendOrder(t *testing.T) {
	store := lshstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.AppendValue(ctx, "k1", []int{1, 2}))
	require.NoError(t, store.AppendValue(ctx, "k1", []int{3, 4}))

	got, err := store.GetList(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []any{[]int{1, 2}, []int{3, 4}}, got)
}

func TestMemoryStore_LiveValues(t *testing.T) {
	// The memory backend holds entries as live objects: no
	// serialization boundary, so types survive as appended.
	store := lshstore.NewMemoryStore()
	ctx := context.Background()

	type record struct {
		ID  string
		Vec []float32
	}
	r := record{ID: "a", Vec: []float32{1, 2, 3}}
	require.NoError(t, store.AppendValue(ctx, "k", r))

	got, err := store.GetList(ctx, "k")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, r, got[0])
}

func TestMemoryStore_KeysMatching(t *testing.T) {
	store := lshstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.AppendValue(ctx, "bucket-0", 1))
	require.NoError(t, store.AppendValue(ctx, "bucket-1", 2))
	require.NoError(t, store.SetValue(ctx, "meta", "m"))

	all, err := store.KeysMatching(ctx, "*")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"bucket-0", "bucket-1", "meta"}, all)

	buckets, err := store.KeysMatching(ctx, "bucket-*")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"bucket-0", "bucket-1"}, buckets)
}

func TestMemoryStore_GetListCopies(t *testing.T) {
	store := lshstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.AppendValue(ctx, "k", "v1"))

	first, err := store.GetList(ctx, "k")
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := store.GetList(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []any{"v1"}, second)
}
