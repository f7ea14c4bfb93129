package storage

import (
	"context"

	"github.com/poiesic/pinyinsearch/core"
)

// ItemRepository persists built index items.
// Implementations must be thread-safe and support concurrent access.
type ItemRepository interface {
	// GetItems retrieves the items stored for id within namespace.
	// Returns ErrNotFound if nothing is stored.
	GetItems(ctx context.Context, namespace, id string) ([]core.Item, error)

	// PutItems replaces the items stored for id within namespace.
	PutItems(ctx context.Context, namespace, id string, items []core.Item) error

	// DeleteNamespace removes every entry within namespace.
	DeleteNamespace(ctx context.Context, namespace string) error

	// DeleteAll removes every entry in every namespace.
	DeleteAll(ctx context.Context) error

	// Namespaces lists the namespaces that currently hold entries, sorted.
	Namespaces(ctx context.Context) ([]string, error)

	// Close releases resources held by the repository.
	Close() error
}
