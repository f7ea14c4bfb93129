package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/pinyinsearch/core"
)

// Handle ids of the vault indices.
const (
	FilesID   = "files"
	FoldersID = "folders"
	TagsID    = "tags"
)

// FileIndex indexes every regular file in the vault by its name without extension.
type FileIndex struct {
	*itemIndex
}

// NewFileIndex creates the files index rooted at root.
func NewFileIndex(root string, keyer *Keyer, opts ...Option) (*FileIndex, error) {
	if root == "" {
		return nil, ErrRootRequired
	}
	o := buildOptions(opts)
	collect := func(ctx context.Context) ([]entry, error) {
		var entries []entry
		err := walkVault(ctx, root, o.excludes, func(rel string, d fs.DirEntry) error {
			if d.Type().IsRegular() {
				entries = append(entries, entry{name: stem(d.Name()), path: rel})
			}
			return nil
		})
		return entries, err
	}
	x, err := newItemIndex(FilesID, core.ItemKindFile, keyer, collect, o.logger)
	if err != nil {
		return nil, err
	}
	return &FileIndex{x}, nil
}

// FolderIndex indexes every directory below the vault root.
type FolderIndex struct {
	*itemIndex
}

// NewFolderIndex creates the folders index rooted at root.
func NewFolderIndex(root string, keyer *Keyer, opts ...Option) (*FolderIndex, error) {
	if root == "" {
		return nil, ErrRootRequired
	}
	o := buildOptions(opts)
	collect := func(ctx context.Context) ([]entry, error) {
		var entries []entry
		err := walkVault(ctx, root, o.excludes, func(rel string, d fs.DirEntry) error {
			if d.IsDir() {
				entries = append(entries, entry{name: d.Name(), path: rel})
			}
			return nil
		})
		return entries, err
	}
	x, err := newItemIndex(FoldersID, core.ItemKindFolder, keyer, collect, o.logger)
	if err != nil {
		return nil, err
	}
	return &FolderIndex{x}, nil
}

// walkVault calls fn for every entry below root, with its slash-separated
// path relative to root. Hidden and excluded names are skipped along with
// everything beneath them. Unreadable entries below root are ignored.
func walkVault(ctx context.Context, root string, excludes map[string]bool, fn func(rel string, d fs.DirEntry) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") || excludes[name] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), d)
	})
}

// stem returns name without its final extension. Dot files keep their name.
func stem(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
