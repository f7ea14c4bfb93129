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

// Package dict provides the phonetic dictionary and its encodings.
//
// A dictionary maps every full pinyin syllable to the Han characters that
// can be read that way. It is loaded whole from an embedded source in one
// of two variants (simplified or traditional characters) and exposed as a
// Table with three positionally aligned sequences:
//
//   - OriginalKeys: full syllables, always in canonical form
//   - Keys: the active encoding of every syllable
//   - Values: the characters read as that syllable
//
// # Double pinyin
//
// Double pinyin layouts compress a syllable into two symbols, one for the
// initial and one for the final. Each layout is a Scheme: a table from
// output code to the fragments it stands for. Schemes are bundled and looked
// up by name; the sentinel scheme "full" leaves keys unchanged.
//
// Convert rewrites one syllable. The retroflex initials zh, ch and sh are
// consumed as a unit and encoded through the scheme; any other initial is a
// single letter copied as is. The rest of the syllable is encoded through
// the scheme. A fragment the scheme does not know contributes nothing to the
// output; Converter counts and logs these misses when converting a whole
// table.
//
// # Immutability
//
// Tables never change after construction. Switching scheme or variant builds
// a new Table, so a reader holding the previous one never observes a partial
// update.
package dict
