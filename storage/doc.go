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

// Package storage defines persistence for built index items.
//
// Built items are kept between sessions so that a cached load can restore
// an index without walking the vault or converting names again. Items are
// grouped by namespace, a fingerprint of the settings they were built
// under, and keyed by handle id within it.
//
// # Usage
//
//	backend, err := badger.OpenBackend(dir, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo := badger.NewItemRepository(backend)
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	backend, err := badger.OpenBackend("", true)
//
// # Serialization
//
// Items are encoded with mus-go using the serializers generated into the
// core package. See MarshalItems.
//
// # Thread Safety
//
// All repository implementations must be safe for concurrent use.
package storage
