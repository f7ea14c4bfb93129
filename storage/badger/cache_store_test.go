package badger

import (
	"context"
	"testing"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/index"
	"github.com/poiesic/pinyinsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	store, err := NewCacheStore(repo, "simplified-full")
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "files")
	require.NoError(t, err)
	assert.False(t, ok)

	items := testItems("files", "a.md")
	require.NoError(t, store.Put(ctx, "files", items))

	got, ok, err := store.Get(ctx, "files")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, items, got)

	err = store.Put(ctx, "files", []string{"wrong"})
	assert.ErrorIs(t, err, index.ErrItemsType)
}

func TestCacheStore_NamespaceIsolation(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	store, err := NewCacheStore(repo, "first")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "files", testItems("files", "a.md")))

	require.NoError(t, store.SetNamespace("second"))
	assert.Equal(t, "second", store.Namespace())
	_, ok, err := store.Get(ctx, "files")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetNamespace("first"))
	_, ok, err = store.Get(ctx, "files")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, store.SetNamespace(""), storage.ErrInvalidNamespace)
	_, err = NewCacheStore(repo, "bad:ns")
	assert.ErrorIs(t, err, storage.ErrInvalidNamespace)
}

func TestCacheStore_ClearRemovesEveryNamespace(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	store, err := NewCacheStore(repo, "first")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "files", testItems("files", "a")))
	require.NoError(t, store.SetNamespace("second"))
	require.NoError(t, store.Put(ctx, "tags", []core.Item{}))

	require.NoError(t, store.Clear(ctx))
	namespaces, err := repo.Namespaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, namespaces)
}

// A registry backed by the badger store restores items without building.
func TestCacheStore_WithRegistry(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	store, err := NewCacheStore(repo, "ns")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "files", testItems("files", "a.md", "b.md")))

	registry, err := index.NewRegistry(index.WithCacheStore(store), index.WithMode(index.ModeCached))
	require.NoError(t, err)

	h := &itemsHandle{id: "files"}
	require.NoError(t, registry.Register(h))

	reports, err := registry.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].CacheHit)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 0, h.builds)
}

type itemsHandle struct {
	id     string
	items  []core.Item
	builds int
}

func (h *itemsHandle) ID() string { return h.id }
func (h *itemsHandle) Items() any { return h.items }
func (h *itemsHandle) Len() int   { return len(h.items) }

func (h *itemsHandle) SetItems(items any) error {
	v, ok := items.([]core.Item)
	if !ok {
		return index.ErrItemsType
	}
	h.items = v
	return nil
}

func (h *itemsHandle) InitIndex(context.Context) error {
	h.builds++
	return nil
}
