// Package redis implements the networked lshstore backend on top of a
// redis server. Importing it registers the "redis" driver:
//
//	import _ "github.com/hupe1980/lshstore/redis"
//
// List entries are stored as preset-dictionary deflate bytes under the
// bucket key via RPUSH, so append order is preserved. Single-value
// slots map to plain GET/SET, uncompressed.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hupe1980/lshstore"
	"github.com/hupe1980/lshstore/codec"
	"github.com/hupe1980/lshstore/dict"
)

func init() {
	lshstore.Register(lshstore.KindRedis, open)
}

// Store implements lshstore.Store over a redis logical database.
type Store struct {
	client *goredis.Client
	comp   *dict.Compressor
	codec  codec.Codec
	logger *lshstore.Logger
}

var _ lshstore.Store = (*Store)(nil)
var _ lshstore.GlobKeyser = (*Store)(nil)

func open(ctx context.Context, cfg lshstore.Config, index int, o *lshstore.Options) (lshstore.Store, error) {
	comp, err := dict.New(o.Seed, o.CompressionLevel)
	if err != nil {
		return nil, err
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Redis.Addr,
		Username:    cfg.Redis.Username,
		Password:    cfg.Redis.Password,
		DB:          index,
		DialTimeout: cfg.Redis.DialTimeout,
	})

	// Fail at open, not at first append.
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Redis.Addr, err)
	}

	return &Store{
		client: client,
		comp:   comp,
		codec:  o.Codec,
		logger: o.Logger.WithBackend(lshstore.KindRedis),
	}, nil
}

// Keys enumerates all keys of the logical database.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.KeysMatching(ctx, "*")
}

// KeysMatching enumerates keys matching a redis glob pattern.
func (s *Store) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	return s.client.Keys(ctx, pattern).Result()
}

// SetValue stores value under key, uncompressed.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// GetValue returns the value stored under key, or
// lshstore.ErrKeyNotFound.
func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", lshstore.ErrKeyNotFound
	}
	return v, err
}

// AppendValue serializes and compresses value, then pushes it onto the
// tail of the list at key. The push is a single atomic redis command.
func (s *Store) AppendValue(ctx context.Context, key string, value any) error {
	b, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	cval, err := s.comp.Compress(string(b))
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, key, cval).Err(); err != nil {
		s.logger.WithKey(key).ErrorContext(ctx, "append failed", "error", err)
		return err
	}
	return nil
}

// GetList returns all entries under key in append order.
//
// Entries are independent compressed units: when one fails to decode,
// the remaining entries are still returned and the failure is reported
// alongside them, wrapping dict.ErrDecode.
func (s *Store) GetList(ctx context.Context, key string) ([]any, error) {
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]any, 0, len(raw))
	var errs []error
	for i, r := range raw {
		text, err := s.comp.Decompress([]byte(r))
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		var v any
		if err := s.codec.Unmarshal([]byte(text), &v); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: unmarshal: %w", i, err))
			continue
		}
		entries = append(entries, v)
	}
	return entries, errors.Join(errs...)
}

// Close releases the client connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
