package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/dict"
	"github.com/poiesic/pinyinsearch/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newTestVault lays out a small vault:
//
//	README
//	读书笔记.md
//	项目/计划.md
//	archive/
//	.obsidian/app.json      (hidden)
//	node_modules/pkg/x.md   (excluded)
func newTestVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "README", "plain file #ignored")
	writeFile(t, root, "读书笔记.md", "# 读书笔记\n#阅读 and #todo #123\n```\n#incode\n```\nsee (#项目/子项)\n")
	writeFile(t, root, "项目/计划.md", "#todo #计划\n")
	writeFile(t, root, ".obsidian/app.json", "{}")
	writeFile(t, root, "node_modules/pkg/x.md", "#hidden")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive"), 0755))
	return root
}

func newTestKeyer(t *testing.T) *Keyer {
	t.Helper()
	table := smallTable(t)
	k, err := NewKeyer(TableFunc(func() *dict.Table { return table }), 0)
	require.NoError(t, err)
	return k
}

func paths(items []core.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Path
	}
	return out
}

func names(items []core.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestFileIndex(t *testing.T) {
	root := newTestVault(t)
	files, err := NewFileIndex(root, newTestKeyer(t))
	require.NoError(t, err)

	assert.Equal(t, FilesID, files.ID())
	assert.True(t, files.UsesRomanizedKeys())
	assert.True(t, index.DependsOnKeys(files))

	require.NoError(t, files.InitIndex(context.Background()))
	items := files.Snapshot()

	assert.Equal(t, []string{"README", "读书笔记.md", "项目/计划.md"}, paths(items))
	assert.Equal(t, []string{"README", "读书笔记", "计划"}, names(items))
	assert.Equal(t, 3, files.Len())

	note := items[1]
	assert.Equal(t, core.ItemKindFile, note.Kind)
	assert.Equal(t, "dushubiji", note.Full)
	assert.Equal(t, "dsbj", note.Initials)
	assert.Equal(t, core.NewItemID(FilesID, "读书笔记.md"), note.Id)

	plan := items[2]
	assert.Equal(t, "jihua", plan.Full)
}

func TestFileIndex_Excludes(t *testing.T) {
	root := newTestVault(t)
	files, err := NewFileIndex(root, newTestKeyer(t), WithExcludes("项目"))
	require.NoError(t, err)

	require.NoError(t, files.InitIndex(context.Background()))
	assert.Equal(t, []string{"README", "读书笔记.md"}, paths(files.Snapshot()))
}

func TestFileIndex_Rebuild(t *testing.T) {
	root := newTestVault(t)
	files, err := NewFileIndex(root, newTestKeyer(t))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, files.InitIndex(ctx))
	first := files.Snapshot()
	require.NoError(t, files.InitIndex(ctx))
	assert.Equal(t, first, files.Snapshot())

	writeFile(t, root, "笔记.md", "")
	require.NoError(t, files.InitIndex(ctx))
	assert.Equal(t, 4, files.Len())
}

func TestFileIndex_Errors(t *testing.T) {
	keyer := newTestKeyer(t)

	_, err := NewFileIndex("", keyer)
	assert.Equal(t, ErrRootRequired, err)

	_, err = NewFileIndex(t.TempDir(), nil)
	assert.Equal(t, ErrKeyerRequired, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	files, err := NewFileIndex(file, keyer)
	require.NoError(t, err)
	assert.ErrorIs(t, files.InitIndex(context.Background()), ErrNotDirectory)

	missing, err := NewFileIndex(filepath.Join(t.TempDir(), "missing"), keyer)
	require.NoError(t, err)
	assert.ErrorIs(t, missing.InitIndex(context.Background()), os.ErrNotExist)
}

func TestFileIndex_Canceled(t *testing.T) {
	files, err := NewFileIndex(newTestVault(t), newTestKeyer(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, files.InitIndex(ctx), context.Canceled)
}

func TestFolderIndex(t *testing.T) {
	folders, err := NewFolderIndex(newTestVault(t), newTestKeyer(t))
	require.NoError(t, err)

	require.NoError(t, folders.InitIndex(context.Background()))
	items := folders.Snapshot()
	assert.Equal(t, []string{"archive", "项目"}, paths(items))
	assert.Equal(t, core.ItemKindFolder, items[1].Kind)
	assert.Equal(t, "xiangmu", items[1].Full)
	assert.Equal(t, "xm", items[1].Initials)
}

func TestTagIndex(t *testing.T) {
	tags, err := NewTagIndex(newTestVault(t), newTestKeyer(t))
	require.NoError(t, err)

	require.NoError(t, tags.InitIndex(context.Background()))
	items := tags.Snapshot()
	assert.Equal(t, []string{"#todo", "#计划", "#阅读", "#项目/子项"}, paths(items))
	assert.Equal(t, []string{"todo", "计划", "阅读", "项目/子项"}, names(items))
	assert.Equal(t, core.ItemKindTag, items[2].Kind)
	assert.Equal(t, "yuedu", items[2].Full)
}

func TestReadTags(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "n.md", "#a #b/c- x#notatag #42\n```go\n#skip\n```\n#d")

	tags, err := readTags(filepath.Join(root, "n.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b/c", "d"}, tags)
}

func TestCommandIndex(t *testing.T) {
	commands, err := NewCommandIndex([]Command{
		{ID: "editor:save", Title: "保存"},
		{ID: "app:open", Title: "Open vault"},
		{ID: "broken", Title: ""},
	}, newTestKeyer(t))
	require.NoError(t, err)

	require.NoError(t, commands.InitIndex(context.Background()))
	items := commands.Snapshot()
	assert.Equal(t, []string{"app:open", "editor:save"}, paths(items))
	assert.Equal(t, core.ItemKindCommand, items[0].Kind)
	assert.Empty(t, items[0].Full)
}

func TestItemIndex_SetItems(t *testing.T) {
	commands, err := NewCommandIndex(nil, newTestKeyer(t))
	require.NoError(t, err)

	assert.ErrorIs(t, commands.SetItems([]string{"x"}), index.ErrItemsType)

	items := []core.Item{{Kind: core.ItemKindCommand, Name: "Open", Path: "app:open"}}
	require.NoError(t, commands.SetItems(items))
	assert.Equal(t, 1, commands.Len())
	assert.Equal(t, items, commands.Items())
}

func TestVaultIndices_WithRegistry(t *testing.T) {
	root := newTestVault(t)
	keyer := newTestKeyer(t)

	files, err := NewFileIndex(root, keyer)
	require.NoError(t, err)
	folders, err := NewFolderIndex(root, keyer)
	require.NoError(t, err)
	commands, err := NewCommandIndex([]Command{{ID: "app:open", Title: "打开"}}, keyer)
	require.NoError(t, err)

	registry, err := index.NewRegistry()
	require.NoError(t, err)
	for _, h := range []index.Handle{files, folders, commands} {
		require.NoError(t, registry.Register(h))
	}

	reports, err := registry.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, 3, reports[0].Items)
	assert.Equal(t, 2, reports[1].Items)
	assert.Equal(t, 1, reports[2].Items)
}
