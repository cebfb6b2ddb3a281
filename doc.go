// Package lshstore is the persistence layer beneath a
// locality-sensitive-hashing index.
//
// It stores, per hash-bucket key, an append-only list of indexed items,
// and keeps the persistent backends compact by compressing each
// serialized entry against a shared preset dictionary (see the dict
// package).
//
// # Backends
//
// Three backends satisfy one Store contract: an in-process map, a redis
// list store, and an embedded bbolt store with duplicate-key semantics.
// The persistent drivers register themselves via blank import:
//
//	import (
//	    "github.com/hupe1980/lshstore"
//	    _ "github.com/hupe1980/lshstore/bolt"
//	)
//
//	store, err := lshstore.Open(ctx, lshstore.Config{
//	    Bolt: &lshstore.BoltConfig{Path: "./buckets.db"},
//	}, 0)
//
// The index component opens one Store at startup and thereafter calls
// AppendValue and GetList against that handle; hash computation and
// nearest-neighbor ranking live outside this package.
//
// # Ordering
//
// The memory and redis backends return lists in append order. The bolt
// backend orders entries by their raw compressed bytes, a structural
// property of its duplicate-key layout; see the bolt package for the
// details.
package lshstore
