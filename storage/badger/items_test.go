package badger

import (
	"context"
	"testing"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(handle string, names ...string) []core.Item {
	items := make([]core.Item, 0, len(names))
	for _, name := range names {
		items = append(items, core.Item{
			Id:   core.NewItemID(handle, name),
			Kind: core.ItemKindFile,
			Name: name,
			Path: name,
		})
	}
	return items
}

func TestItemRepository_PutGet(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = repo.GetItems(ctx, "ns1", "files")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	items := testItems("files", "a.md", "笔记.md")
	require.NoError(t, repo.PutItems(ctx, "ns1", "files", items))

	got, err := repo.GetItems(ctx, "ns1", "files")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	replacement := testItems("files", "b.md")
	require.NoError(t, repo.PutItems(ctx, "ns1", "files", replacement))
	got, err = repo.GetItems(ctx, "ns1", "files")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)

	_, err = repo.GetItems(ctx, "ns2", "files")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestItemRepository_InvalidNamespace(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	for _, ns := range []string{"", "a:b"} {
		_, err := repo.GetItems(ctx, ns, "files")
		assert.ErrorIs(t, err, storage.ErrInvalidNamespace)
		assert.ErrorIs(t, repo.PutItems(ctx, ns, "files", nil), storage.ErrInvalidNamespace)
		assert.ErrorIs(t, repo.DeleteNamespace(ctx, ns), storage.ErrInvalidNamespace)
	}
}

func TestItemRepository_Namespaces(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, repo.PutItems(ctx, "beta", "files", testItems("files", "a")))
	require.NoError(t, repo.PutItems(ctx, "alpha", "files", testItems("files", "b")))
	require.NoError(t, repo.PutItems(ctx, "alpha", "tags", testItems("tags", "c")))

	namespaces, err := repo.Namespaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, namespaces)

	require.NoError(t, repo.DeleteNamespace(ctx, "alpha"))
	namespaces, err = repo.Namespaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, namespaces)

	require.NoError(t, repo.DeleteAll(ctx))
	namespaces, err = repo.Namespaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, namespaces)
}

func TestItemRepository_Closed(t *testing.T) {
	repo, backend, err := NewMemoryItemRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = repo.GetItems(context.Background(), "ns", "files")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestItemRepository_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	items := testItems("folders", "项目", "archive")

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NoError(t, NewItemRepository(backend).PutItems(ctx, "ns", "folders", items))
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	got, err := NewItemRepository(backend).GetItems(ctx, "ns", "folders")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}
