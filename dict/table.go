package dict

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// Table is the working dictionary shared read-only by every index.
type Table struct {
	variant      Variant
	scheme       string
	originalKeys []string
	keys         []string
	values       []string
	byRune       map[rune][]int
	fingerprint  string
}

// NewTable builds a table with full-syllable keys.
// originalKeys and values must have the same length.
func NewTable(v Variant, originalKeys, values []string) (*Table, error) {
	if len(originalKeys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrMisaligned, len(originalKeys), len(values))
	}

	t := &Table{
		variant:      v,
		scheme:       SchemeFull,
		originalKeys: slices.Clone(originalKeys),
		values:       slices.Clone(values),
		byRune:       make(map[rune][]int),
	}
	t.keys = slices.Clone(t.originalKeys)

	for i, chars := range t.values {
		for _, r := range chars {
			t.byRune[r] = append(t.byRune[r], i)
		}
	}

	t.fingerprint = t.computeFingerprint()
	return t, nil
}

// WithKeys returns a table that shares t's syllables and characters but uses
// keys as its active encoding.
func (t *Table) WithKeys(scheme string, keys []string) (*Table, error) {
	if len(keys) != len(t.originalKeys) {
		return nil, fmt.Errorf("%w: %d keys, %d syllables", ErrMisaligned, len(keys), len(t.originalKeys))
	}
	out := &Table{
		variant:      t.variant,
		scheme:       scheme,
		originalKeys: t.originalKeys,
		keys:         slices.Clone(keys),
		values:       t.values,
		byRune:       t.byRune,
	}
	out.fingerprint = out.computeFingerprint()
	return out, nil
}

// Len returns the number of syllables.
func (t *Table) Len() int {
	return len(t.originalKeys)
}

// Variant returns the character variant the table was loaded from.
func (t *Table) Variant() Variant {
	return t.variant
}

// Scheme returns the name of the scheme the keys are encoded with.
func (t *Table) Scheme() string {
	return t.scheme
}

// OriginalKeys returns a copy of the full-syllable keys.
func (t *Table) OriginalKeys() []string {
	return slices.Clone(t.originalKeys)
}

// Keys returns a copy of the active keys.
func (t *Table) Keys() []string {
	return slices.Clone(t.keys)
}

// Values returns a copy of the character strings.
func (t *Table) Values() []string {
	return slices.Clone(t.values)
}

// Entry returns the original key, active key and characters at position i.
func (t *Table) Entry(i int) (originalKey, key, value string) {
	return t.originalKeys[i], t.keys[i], t.values[i]
}

// Readings returns the active keys of every syllable r can be read as,
// in table order. It returns nil for characters outside the dictionary.
func (t *Table) Readings(r rune) []string {
	positions := t.byRune[r]
	if len(positions) == 0 {
		return nil
	}
	out := make([]string, len(positions))
	for i, pos := range positions {
		out[i] = t.keys[pos]
	}
	return out
}

// Syllables returns the full syllables r can be read as, aligned with
// Readings.
func (t *Table) Syllables(r rune) []string {
	positions := t.byRune[r]
	if len(positions) == 0 {
		return nil
	}
	out := make([]string, len(positions))
	for i, pos := range positions {
		out[i] = t.originalKeys[pos]
	}
	return out
}

// Fingerprint identifies the table's contents: variant, scheme and keys.
// Tables with equal fingerprints produce identical index items.
func (t *Table) Fingerprint() string {
	return t.fingerprint
}

func (t *Table) computeFingerprint() string {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(t.variant.String()))
	h.Write([]byte{0})
	h.Write([]byte(t.scheme))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(len(t.originalKeys))))
	for _, key := range t.keys {
		h.Write([]byte{0})
		h.Write([]byte(key))
	}
	return hex.EncodeToString(h.Sum(nil))
}
