package lshstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/lshstore/codec"
)

// Backend kinds. Each corresponds to exactly one Config section and one
// registered driver.
const (
	KindMemory = "memory"
	KindRedis  = "redis"
	KindBolt   = "bolt"
)

// Config selects and parameterizes exactly one storage backend.
// Setting zero or more than one section is a ConfigError at Open.
type Config struct {
	Memory *MemoryConfig
	Redis  *RedisConfig
	Bolt   *BoltConfig

	// Codec optionally names the entry codec ("json", "go-json").
	// Empty selects codec.Default. Changing the codec of an existing
	// deployment is a format change, same as changing the seed.
	Codec string
}

// MemoryConfig configures the in-process backend. It has no parameters.
type MemoryConfig struct{}

// RedisConfig configures the redis backend. The index passed to Open
// selects the logical database.
type RedisConfig struct {
	Addr     string
	Username string
	Password string

	// DialTimeout bounds the eager connection check at Open.
	// Zero means the client default.
	DialTimeout time.Duration
}

// BoltConfig configures the bolt backend. The index passed to Open
// names the root bucket, so several indexes can share one file.
type BoltConfig struct {
	Path string

	// OpenTimeout bounds waiting for the file lock. Zero waits
	// indefinitely.
	OpenTimeout time.Duration
}

func (c Config) kinds() []string {
	var kinds []string
	if c.Memory != nil {
		kinds = append(kinds, KindMemory)
	}
	if c.Redis != nil {
		kinds = append(kinds, KindRedis)
	}
	if c.Bolt != nil {
		kinds = append(kinds, KindBolt)
	}
	return kinds
}

// OpenFunc constructs a Store for one backend kind. Drivers connect
// eagerly: a misconfigured or unreachable backend fails here, not at
// first use.
type OpenFunc func(ctx context.Context, cfg Config, index int, o *Options) (Store, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]OpenFunc)
)

// driverImports maps a kind to the package whose blank import registers
// its driver.
var driverImports = map[string]string{
	KindRedis: "github.com/hupe1980/lshstore/redis",
	KindBolt:  "github.com/hupe1980/lshstore/bolt",
}

// Register makes a driver available under the given kind. It is called
// from driver package init functions and panics on duplicate or nil
// registration, mirroring database/sql.
func Register(kind string, fn OpenFunc) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if fn == nil {
		panic("lshstore: Register driver is nil")
	}
	if _, dup := drivers[kind]; dup {
		panic("lshstore: Register called twice for driver " + kind)
	}
	drivers[kind] = fn
}

func lookupDriver(kind string) (OpenFunc, bool) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	fn, ok := drivers[kind]
	return fn, ok
}

// Open constructs the one backend selected by cfg, namespaced by index
// (redis logical database number, bolt root bucket name).
//
// Configuration problems surface before any connection is attempted.
func Open(ctx context.Context, cfg Config, index int, opts ...Option) (Store, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(o)
	}
	if cfg.Codec != "" {
		c, ok := codec.ByName(cfg.Codec)
		if !ok {
			return nil, fmt.Errorf("lshstore: unknown codec %q", cfg.Codec)
		}
		o.Codec = c
	}

	kinds := cfg.kinds()
	if len(kinds) != 1 {
		return nil, &ConfigError{Selected: kinds}
	}
	kind := kinds[0]

	fn, ok := lookupDriver(kind)
	if !ok {
		return nil, &MissingDriverError{Kind: kind, ImportPath: driverImports[kind]}
	}

	store, err := fn(ctx, cfg, index, o)
	if err != nil {
		return nil, fmt.Errorf("lshstore: open %s backend: %w", kind, err)
	}
	o.Logger.InfoContext(ctx, "storage opened", "backend", kind, "index", index)
	return store, nil
}

func init() {
	Register(KindMemory, func(_ context.Context, _ Config, _ int, o *Options) (Store, error) {
		return NewMemoryStore(), nil
	})
}
