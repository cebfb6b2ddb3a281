package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lshstore"
)

// Entry returns a representative stored value: a record identifier plus
// its feature vector, in the shape that survives a JSON round trip
// unchanged (string keys, float64 numbers). Using this shape keeps the
// suite's equality assertions valid for both the live-object memory
// backend and the serializing persistent backends.
func Entry(id string, vec ...float64) map[string]any {
	v := make([]any, len(vec))
	for i, f := range vec {
		v[i] = f
	}
	return map[string]any{"id": id, "vec": v}
}

// Suite is the backend-independent contract test. Every Store
// implementation must pass it; the two flags exempt exactly the
// documented structural differences.
type Suite struct {
	// Open returns a fresh, empty store. Cleanup is the caller's
	// responsibility (use t.Cleanup).
	Open func(t *testing.T) lshstore.Store

	// OrderedLists is set for backends whose GetList preserves append
	// order. Backends without it still must return every appended
	// entry.
	OrderedLists bool

	// SingleValue is set for backends supporting the SetValue/GetValue
	// slot. Backends without it must fail with ErrNotSupported.
	SingleValue bool
}

// Run executes the contract subtests.
func (s Suite) Run(t *testing.T) {
	t.Run("EmptyKey", s.testEmptyKey)
	t.Run("AppendAndGetList", s.testAppendAndGetList)
	t.Run("Keys", s.testKeys)
	if s.SingleValue {
		t.Run("SingleValueSlot", s.testSingleValueSlot)
	} else {
		t.Run("SingleValueUnsupported", s.testSingleValueUnsupported)
	}
}

func (s Suite) testEmptyKey(t *testing.T) {
	store := s.Open(t)
	ctx := context.Background()

	list, err := store.GetList(ctx, "never-appended")
	require.NoError(t, err)
	require.Empty(t, list)
}

func (s Suite) testAppendAndGetList(t *testing.T) {
	store := s.Open(t)
	ctx := context.Background()

	want := []any{
		Entry("a", 1, 2, 3),
		Entry("b", 0, 0, 144),
		Entry("c", 4, 36, 18),
	}
	for _, v := range want {
		require.NoError(t, store.AppendValue(ctx, "bucket", v))
	}

	got, err := store.GetList(ctx, "bucket")
	require.NoError(t, err)
	if s.OrderedLists {
		require.Equal(t, want, got)
	} else {
		require.ElementsMatch(t, want, got)
	}

	// Other keys stay untouched.
	other, err := store.GetList(ctx, "other-bucket")
	require.NoError(t, err)
	require.Empty(t, other)
}

func (s Suite) testKeys(t *testing.T) {
	store := s.Open(t)
	ctx := context.Background()

	require.NoError(t, store.AppendValue(ctx, "k1", Entry("a", 1)))
	require.NoError(t, store.AppendValue(ctx, "k2", Entry("b", 2)))
	require.NoError(t, store.AppendValue(ctx, "k2", Entry("c", 3)))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"k1", "k2"}, keys)
}

func (s Suite) testSingleValueSlot(t *testing.T) {
	store := s.Open(t)
	ctx := context.Background()

	_, err := store.GetValue(ctx, "absent")
	require.ErrorIs(t, err, lshstore.ErrKeyNotFound)

	require.NoError(t, store.SetValue(ctx, "slot", "payload"))
	v, err := store.GetValue(ctx, "slot")
	require.NoError(t, err)
	require.Equal(t, "payload", v)
}

func (s Suite) testSingleValueUnsupported(t *testing.T) {
	store := s.Open(t)
	ctx := context.Background()

	err := store.SetValue(ctx, "slot", "payload")
	require.True(t, errors.Is(err, lshstore.ErrNotSupported))

	_, err = store.GetValue(ctx, "slot")
	require.True(t, errors.Is(err, lshstore.ErrNotSupported))
}
