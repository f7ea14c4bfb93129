package index

import "context"

// Handle is a consumer-owned search index.
type Handle interface {
	// ID returns the stable identifier used as the cache key.
	ID() string

	// Items returns the built entries. The registry treats the value as opaque.
	Items() any

	// SetItems replaces the entries wholesale.
	// Returns ErrItemsType if items is not the consumer's item type.
	SetItems(items any) error

	// Len returns the number of built entries.
	Len() int

	// InitIndex rebuilds the entries from the current dictionary table and
	// the consumer's own source. Every call is a full rebuild.
	InitIndex(ctx context.Context) error
}

// KeyDependent is implemented by handles whose items embed dictionary keys.
// They are rebuilt when the double pinyin scheme changes.
type KeyDependent interface {
	UsesRomanizedKeys() bool
}

// DependsOnKeys reports whether h must be rebuilt after a scheme change.
func DependsOnKeys(h Handle) bool {
	kd, ok := h.(KeyDependent)
	return ok && kd.UsesRomanizedKeys()
}
