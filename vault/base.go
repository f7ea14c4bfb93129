package vault

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/index"
)

// entry is a named piece of vault content before keying.
type entry struct {
	name string
	path string
}

// collector lists the entries an index is built from.
type collector func(ctx context.Context) ([]entry, error)

// itemIndex holds built items and implements index.Handle around a collector.
type itemIndex struct {
	id      string
	kind    core.ItemKind
	keyer   *Keyer
	collect collector
	logger  *slog.Logger

	mu    sync.RWMutex
	items []core.Item
}

var _ index.Handle = (*itemIndex)(nil)
var _ index.KeyDependent = (*itemIndex)(nil)

func newItemIndex(id string, kind core.ItemKind, keyer *Keyer, collect collector, logger *slog.Logger) (*itemIndex, error) {
	if keyer == nil {
		return nil, ErrKeyerRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &itemIndex{
		id:      id,
		kind:    kind,
		keyer:   keyer,
		collect: collect,
		logger:  logger,
	}, nil
}

// ID implements index.Handle.
func (x *itemIndex) ID() string {
	return x.id
}

// Items implements index.Handle. The value is a []core.Item.
func (x *itemIndex) Items() any {
	return x.Snapshot()
}

// Snapshot returns a copy of the built items.
func (x *itemIndex) Snapshot() []core.Item {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.items)
}

// SetItems implements index.Handle.
func (x *itemIndex) SetItems(items any) error {
	list, ok := items.([]core.Item)
	if !ok {
		return fmt.Errorf("%w: %T", index.ErrItemsType, items)
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.items = slices.Clone(list)
	return nil
}

// Len implements index.Handle.
func (x *itemIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.items)
}

// UsesRomanizedKeys implements index.KeyDependent.
func (x *itemIndex) UsesRomanizedKeys() bool {
	return true
}

// InitIndex implements index.Handle.
func (x *itemIndex) InitIndex(ctx context.Context) error {
	entries, err := x.collect(ctx)
	if err != nil {
		return err
	}

	items := make([]core.Item, 0, len(entries))
	for _, e := range entries {
		keys, err := x.keyer.Key(e.name)
		if err != nil {
			return err
		}
		item := core.Item{
			Id:       core.NewItemID(x.id, e.path),
			Kind:     x.kind,
			Name:     e.name,
			Path:     e.path,
			Full:     keys.Full,
			Initials: keys.Initials,
			Readings: keys.Readings,
		}
		if err := core.ValidateItem(&item); err != nil {
			x.logger.Warn("skipping invalid item", "index", x.id, "path", e.path, "err", err)
			continue
		}
		items = append(items, item)
	}

	slices.SortFunc(items, func(a, b core.Item) int {
		return strings.Compare(a.Path, b.Path)
	})

	x.mu.Lock()
	x.items = items
	x.mu.Unlock()
	return nil
}
