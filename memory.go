package lshstore

import (
	"context"
	"path"
	"sync"
)

// MemoryStore is the in-process Store implementation for testing and
// ephemeral indexes. Entries are held as live values: nothing is
// serialized or compressed, and nothing survives the process.
// Thread-safe for concurrent readers and writers.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	lists  map[string][]any
}

var _ GlobKeyser = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		lists:  make(map[string][]any),
	}
}

// Keys enumerates every key with either a value or a list.
func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{}, len(m.values)+len(m.lists))
	var keys []string
	for k := range m.values {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range m.lists {
		if _, dup := seen[k]; !dup {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// KeysMatching enumerates keys matching a glob pattern.
func (m *MemoryStore) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	keys, err := m.Keys(ctx)
	if err != nil {
		return nil, err
	}
	matched := keys[:0]
	for _, k := range keys {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, k)
		}
	}
	return matched, nil
}

// SetValue stores value under key.
func (m *MemoryStore) SetValue(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// GetValue returns the value stored under key, or ErrKeyNotFound.
func (m *MemoryStore) GetValue(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// AppendValue adds value to the end of the list under key, creating the
// list lazily.
func (m *MemoryStore) AppendValue(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[key] = append(m.lists[key], value)
	return nil
}

// GetList returns the entries appended under key, in append order.
func (m *MemoryStore) GetList(_ context.Context, key string) ([]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.lists[key]
	// Return a copy to prevent external mutation
	out := make([]any, len(list))
	copy(out, list)
	return out, nil
}

// Close is a no-op for the in-process store.
func (m *MemoryStore) Close() error { return nil }
