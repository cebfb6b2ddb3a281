package lshstore

import "context"

// Store is the uniform contract over the hash-bucket storage backends.
//
// A Store keeps, per opaque bucket key, an append-only ordered list of
// entries plus an independent single-value slot. Keys are never
// interpreted, only compared. Entries are appended, never removed or
// mutated in place.
//
// Exactly three implementations exist: the in-process memory store and
// the redis and bolt drivers. A new backend is a new driver package,
// not a new branch at call sites.
type Store interface {
	// Keys enumerates the stored keys. Ordering is unspecified.
	Keys(ctx context.Context) ([]string, error)

	// SetValue stores value under key in the single-value slot,
	// uncompressed and independent of the list mechanism.
	SetValue(ctx context.Context, key, value string) error

	// GetValue returns the single value stored under key.
	// It returns ErrKeyNotFound when no value has been set.
	GetValue(ctx context.Context, key string) (string, error)

	// AppendValue serializes value and durably adds it to the end of
	// the list addressed by key, creating the list if needed.
	AppendValue(ctx context.Context, key string, value any) error

	// GetList returns all entries previously appended under key, in
	// the backend's list order. A key never appended to yields an
	// empty slice and a nil error.
	//
	// When individual entries fail to decode, the readable entries are
	// returned together with an error wrapping dict.ErrDecode: one
	// corrupt entry does not hide the others, and the fault is never
	// swallowed.
	GetList(ctx context.Context, key string) ([]any, error)

	// Close releases the backend's underlying connection or storage
	// environment.
	Close() error
}

// GlobKeyser is an optional interface for backends whose key
// enumeration supports glob-style filtering.
type GlobKeyser interface {
	// KeysMatching enumerates keys matching pattern ("*" matches all).
	KeysMatching(ctx context.Context, pattern string) ([]string, error)
}
