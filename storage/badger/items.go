// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
type ItemRepository struct {
	backend *Backend
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(backend *Backend) *ItemRepository {
	return &ItemRepository{
		backend: backend,
	}
}

func validateNamespace(namespace string) error {
	if namespace == "" || strings.Contains(namespace, keySeparator) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidNamespace, namespace)
	}
	return nil
}

func (r *ItemRepository) checkOpen() error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// GetItems retrieves the items stored for id within namespace.
func (r *ItemRepository) GetItems(ctx context.Context, namespace, id string) ([]core.Item, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	var items []core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeItemsKey(namespace, id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			items, unmarshalErr = storage.UnmarshalItems(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return items, nil
}

// PutItems replaces the items stored for id within namespace.
func (r *ItemRepository) PutItems(ctx context.Context, namespace, id string, items []core.Item) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	if err := r.checkOpen(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeItemsKey(namespace, id), storage.MarshalItems(items)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteNamespace removes every entry within namespace.
func (r *ItemRepository) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.backend.DropPrefix(makeNamespacePrefix(namespace))
}

// DeleteAll removes every entry in every namespace.
func (r *ItemRepository) DeleteAll(ctx context.Context) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.backend.DropPrefix(makeCachePrefix())
}

// Namespaces lists the namespaces that currently hold entries, sorted.
func (r *ItemRepository) Namespaces(ctx context.Context) ([]string, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeCachePrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if namespace, _, ok := splitItemsKey(iter.Item().Key()); ok {
				seen[namespace] = true
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	namespaces := make([]string, 0, len(seen))
	for namespace := range seen {
		namespaces = append(namespaces, namespace)
	}
	slices.Sort(namespaces)
	return namespaces, nil
}

// Close is a no-op; the backend owns the database.
func (r *ItemRepository) Close() error {
	return nil
}
