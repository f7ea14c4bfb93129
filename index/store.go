package index

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// CacheStore keeps built items between loads, keyed by handle id.
type CacheStore interface {
	// Get returns the items last stored for id.
	// The boolean is false when nothing is stored.
	Get(ctx context.Context, id string) (any, bool, error)

	// Put stores items for id, replacing any previous value.
	Put(ctx context.Context, id string, items any) error

	// Clear removes every stored value.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process CacheStore.
// Values are stored by reference; it is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]any
}

var _ CacheStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]any)}
}

// Get implements CacheStore.
func (m *MemoryStore) Get(_ context.Context, id string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.entries[id]
	if ok && items == nil {
		return nil, false, nil
	}
	return items, ok, nil
}

// Put implements CacheStore.
func (m *MemoryStore) Put(_ context.Context, id string, items any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = items
	return nil
}

// Clear implements CacheStore.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]any)
	return nil
}

// IDs returns the ids currently stored, sorted.
func (m *MemoryStore) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.entries))
}
