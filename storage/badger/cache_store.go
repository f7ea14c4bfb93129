package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/index"
	"github.com/poiesic/pinyinsearch/storage"
)

// CacheStore persists handle items across sessions.
// Entries live under a namespace so that items built under one
// dictionary configuration are never restored under another.
type CacheStore struct {
	repo      storage.ItemRepository
	mu        sync.RWMutex
	namespace string
}

var _ index.CacheStore = (*CacheStore)(nil)

// NewCacheStore creates a store reading and writing namespace.
func NewCacheStore(repo storage.ItemRepository, namespace string) (*CacheStore, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	return &CacheStore{repo: repo, namespace: namespace}, nil
}

// Namespace returns the namespace currently in use.
func (s *CacheStore) Namespace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namespace
}

// SetNamespace switches subsequent reads and writes to namespace.
// Entries in the previous namespace are left in place.
func (s *CacheStore) SetNamespace(namespace string) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.namespace = namespace
	return nil
}

// Get implements index.CacheStore.
func (s *CacheStore) Get(ctx context.Context, id string) (any, bool, error) {
	items, err := s.repo.GetItems(ctx, s.Namespace(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return items, true, nil
}

// Put implements index.CacheStore. items must be a []core.Item.
func (s *CacheStore) Put(ctx context.Context, id string, items any) error {
	list, ok := items.([]core.Item)
	if !ok {
		return fmt.Errorf("%w: %T", index.ErrItemsType, items)
	}
	return s.repo.PutItems(ctx, s.Namespace(), id, list)
}

// Clear implements index.CacheStore. Every namespace is removed.
func (s *CacheStore) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
