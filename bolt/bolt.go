// Package bolt implements the embedded lshstore backend on top of
// bbolt. Importing it registers the "bolt" driver:
//
//	import _ "github.com/hupe1980/lshstore/bolt"
//
// # Layout
//
// One root bucket per index holds a nested bucket per hash-bucket key;
// each list entry is stored as a key of that nested bucket, in its
// compressed byte form. This reproduces duplicate-key (dupsort)
// semantics: entries iterate in byte order of the compressed bytes, not
// in append order, and appending a byte-identical entry twice coalesces
// into one. Callers that need append order should use the redis
// backend.
//
// Single-value slots are intentionally unsupported; this backend only
// provides list semantics.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	bbolt "go.etcd.io/bbolt"

	"github.com/hupe1980/lshstore"
	"github.com/hupe1980/lshstore/codec"
	"github.com/hupe1980/lshstore/dict"
)

func init() {
	lshstore.Register(lshstore.KindBolt, open)
}

// Store implements lshstore.Store over one root bucket of a bbolt file.
type Store struct {
	db     *bbolt.DB
	ns     []byte
	comp   *dict.Compressor
	codec  codec.Codec
	logger *lshstore.Logger
}

var _ lshstore.Store = (*Store)(nil)

func open(_ context.Context, cfg lshstore.Config, index int, o *lshstore.Options) (lshstore.Store, error) {
	comp, err := dict.New(o.Seed, o.CompressionLevel)
	if err != nil {
		return nil, err
	}

	db, err := bbolt.Open(cfg.Bolt.Path, 0o600, &bbolt.Options{
		Timeout: cfg.Bolt.OpenTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Bolt.Path, err)
	}

	ns := []byte(strconv.Itoa(index))
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ns)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create namespace bucket %s: %w", ns, err)
	}

	return &Store{
		db:     db,
		ns:     ns,
		comp:   comp,
		codec:  o.Codec,
		logger: o.Logger.WithBackend(lshstore.KindBolt),
	}, nil
}

// Keys enumerates the hash-bucket keys of this namespace.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.ns).ForEachBucket(func(k []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// SetValue is not supported; this backend only provides list semantics.
func (s *Store) SetValue(_ context.Context, _, _ string) error {
	return lshstore.ErrNotSupported
}

// GetValue is not supported; this backend only provides list semantics.
func (s *Store) GetValue(_ context.Context, _ string) (string, error) {
	return "", lshstore.ErrNotSupported
}

// AppendValue serializes and compresses value and inserts it as one
// more entry under key, inside its own write transaction. The commit is
// the durability boundary; any failure rolls the transaction back.
func (s *Store) AppendValue(ctx context.Context, key string, value any) error {
	b, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	cval, err := s.comp.Compress(string(b))
	if err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		kb, err := tx.Bucket(s.ns).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		return kb.Put(cval, nil)
	}); err != nil {
		s.logger.WithKey(key).ErrorContext(ctx, "append failed", "error", err)
		return err
	}
	return nil
}

// GetList returns all entries under key, iterated inside one read
// transaction in the store's native order: the byte order of the
// compressed entries, which is not append order.
//
// Entries are independent compressed units: when one fails to decode,
// the remaining entries are still returned and the failure is reported
// alongside them, wrapping dict.ErrDecode.
func (s *Store) GetList(_ context.Context, key string) ([]any, error) {
	entries := []any{}
	var decodeErrs []error
	err := s.db.View(func(tx *bbolt.Tx) error {
		kb := tx.Bucket(s.ns).Bucket([]byte(key))
		if kb == nil {
			return nil
		}
		i := 0
		c := kb.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			text, err := s.comp.Decompress(k)
			if err != nil {
				decodeErrs = append(decodeErrs, fmt.Errorf("entry %d: %w", i, err))
				i++
				continue
			}
			var v any
			if err := s.codec.Unmarshal([]byte(text), &v); err != nil {
				decodeErrs = append(decodeErrs, fmt.Errorf("entry %d: unmarshal: %w", i, err))
				i++
				continue
			}
			entries = append(entries, v)
			i++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, errors.Join(decodeErrs...)
}

// Close releases the bbolt environment and its file lock.
func (s *Store) Close() error {
	return s.db.Close()
}
