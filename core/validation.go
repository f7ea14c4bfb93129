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

package core

import (
	"fmt"
	"unicode/utf8"
)

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Kind must be one of the known kinds
//   - Readings, when present, must hold one entry per character of Name
//
// NOT validated:
//   - Full and Initials (may be empty for names with no phonetic content)
//   - ID (derived, any value is valid)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyName)
	}

	if err := ValidateItemKind(item.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	if len(item.Readings) > 0 && len(item.Readings) != utf8.RuneCountInString(item.Name) {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrReadingsMismatch)
	}

	return nil
}

// ValidateItemKind validates that an ItemKind has a valid value.
func ValidateItemKind(kind ItemKind) error {
	if kind < ItemKindFile || kind > ItemKindTag {
		return fmt.Errorf("%w: value %d", ErrInvalidItemKind, kind)
	}
	return nil
}
