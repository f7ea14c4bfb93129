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

// Package index manages the lifecycle of search indexes.
//
// Every consumer (files, folders, commands, tags) owns one Handle. The
// Registry keeps handles in registration order and drives them through a
// build pass. It never looks inside a handle's items beyond their count.
//
// # Modes
//
// In ModeStandard every load rebuilds every handle, one after the other,
// and logs one diagnostic line per handle:
//
//	msg="index built" id=files items=1234 seconds=0.0421
//
// In ModeCached a load first asks the CacheStore for each handle's items.
// A hit is swapped into the handle whole and skips the build. Teardown in
// this mode writes every handle's items back to the store, so the next
// load in the same process (or, with a persistent store, the next process)
// starts without rebuilding. Leaving ModeCached clears the store.
//
// # Failure policy
//
// By default the first failing handle aborts the pass and later handles
// are not built. WithContinueOnError builds every handle and returns all
// failures joined.
//
// # Concurrency
//
// Handles never build concurrently. The registry serializes its own
// operations; the context is only checked between handles, never inside a
// build.
package index
