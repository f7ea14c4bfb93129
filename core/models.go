package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed items.
// It is derived from the owning index and the item's path so that
// rebuilding an index yields the same IDs for the same items.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ItemKind identifies which kind of vault object an item refers to.
type ItemKind int

const (
	// ItemKindFile is a regular file inside the vault.
	ItemKindFile ItemKind = iota + 1
	// ItemKindFolder is a directory inside the vault.
	ItemKindFolder
	// ItemKindCommand is a named command exposed by the host.
	ItemKindCommand
	// ItemKindTag is a #tag found in vault notes.
	ItemKindTag
)

// String returns the lowercase name of the kind.
func (k ItemKind) String() string {
	switch k {
	case ItemKindFile:
		return "file"
	case ItemKindFolder:
		return "folder"
	case ItemKindCommand:
		return "command"
	case ItemKindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// ReadingSeparator joins alternative readings of a single character in Item.Readings.
const ReadingSeparator = "|"

// Item is a single searchable entry built by an index.
type Item struct {
	Id       ID
	Kind     ItemKind
	Name     string   // Display name (file base name, command title, tag text)
	Path     string   // Vault-relative path, command id or tag text
	Full     string   // Phonetic key using the first reading of every character
	Initials string   // First symbol of every phonetic key segment
	Readings []string // Per-character alternatives joined by ReadingSeparator
}

// Alternatives returns the candidate readings for the character at position i.
func (it *Item) Alternatives(i int) []string {
	if i < 0 || i >= len(it.Readings) {
		return nil
	}
	return strings.Split(it.Readings[i], ReadingSeparator)
}

// NewItemID builds the ID of an item owned by the index with the given id.
func NewItemID(indexID, path string) ID {
	return IDFromContent(indexID + "\x00" + path)
}
