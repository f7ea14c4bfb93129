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

// Package vault provides the search indices that consume the dictionary.
//
// Each index implements index.Handle and turns one kind of vault content
// into core.Item values keyed by their pinyin readings:
//
//   - FileIndex: every regular file under the vault root
//   - FolderIndex: every directory under the vault root
//   - CommandIndex: a fixed list of host commands
//   - TagIndex: every #tag found in the vault's markdown notes
//
// Names are keyed through a Keyer, which reads the current dictionary
// table on every call. Because item keys embed the active double pinyin
// encoding, all four indices report UsesRomanizedKeys and are rebuilt when
// the scheme changes.
package vault
