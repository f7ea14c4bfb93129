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

package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/pinyinsearch/core"
)

// snapshotVersion prefixes every encoded item list.
const snapshotVersion byte = 1

// MarshalItems serializes items to bytes.
// Layout: version byte, item count, items.
func MarshalItems(items []core.Item) []byte {
	size := 1 + varint.Int.Size(len(items))
	for i := range items {
		size += core.ItemMUS.Size(items[i])
	}

	buf := make([]byte, size)
	buf[0] = snapshotVersion
	n := 1 + varint.Int.Marshal(len(items), buf[1:])
	for i := range items {
		n += core.ItemMUS.Marshal(items[i], buf[n:])
	}
	return buf
}

// UnmarshalItems deserializes items written by MarshalItems.
func UnmarshalItems(data []byte) ([]core.Item, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	if data[0] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrSerializationFailed, data[0])
	}

	count, n, err := varint.Int.Unmarshal(data[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, core.ErrNegativeLength)
	}
	n++

	items := make([]core.Item, 0, min(count, len(data)))
	for range count {
		if n >= len(data) {
			return nil, ErrTruncatedData
		}
		item, read, err := core.ItemMUS.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		n += read
		items = append(items, item)
	}

	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return items, nil
}
