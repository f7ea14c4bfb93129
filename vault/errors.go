package vault

import "errors"

var (
	// ErrTableRequired is returned when no dictionary table is available.
	ErrTableRequired = errors.New("dictionary table required")

	// ErrTableSourceRequired is returned when a Keyer is created without a source.
	ErrTableSourceRequired = errors.New("table source required")

	// ErrKeyerRequired is returned when an index is created without a keyer.
	ErrKeyerRequired = errors.New("keyer required")

	// ErrRootRequired is returned when a vault index is created without a root.
	ErrRootRequired = errors.New("vault root required")

	// ErrNotDirectory is returned when the vault root is not a directory.
	ErrNotDirectory = errors.New("vault root is not a directory")
)
