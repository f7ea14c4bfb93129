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

// Package search ranks indexed vault items against phonetic queries.
//
// A Matcher scores one item against one query. The bundled TieredMatcher
// recognizes, from strongest to weakest:
//   - Latin names matched literally (exact, prefix, substring)
//   - the query equal to a name's initials or its full reading
//   - a prefix of the full reading
//   - a subsequence of the initials
//   - a match through an alternative reading of a polyphonic character
//   - the full reading with a single typo
//
// The Searcher runs a matcher over the items of several indices and
// returns the best hits. Queries may end with a kind filter:
// "dir", "file", "cmd", "tag" or an extension such as ".md".
package search
