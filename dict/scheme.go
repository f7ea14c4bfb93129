package dict

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// SchemeFull is the sentinel scheme that keeps full syllables as keys.
const SchemeFull = "full"

// Scheme is a double pinyin layout.
type Scheme struct {
	name        string
	codes       map[string][]string
	reverse     map[string]string
	zeroInitial map[string]string

	// useZeroInitial enables the zeroInitial table in ConvertDetailed.
	useZeroInitial bool
}

// NewScheme builds a scheme from its code -> fragments table.
// zeroInitial optionally maps whole syllables that have no consonant
// initial (a, ang, er, ...) to their two-symbol code. The table is only
// consulted by schemes returned from WithZeroInitial.
// The fragment -> code reverse index is computed here once; a fragment
// listed under two codes is rejected.
func NewScheme(name string, codes map[string][]string, zeroInitial map[string]string) (*Scheme, error) {
	s := &Scheme{
		name:        name,
		codes:       make(map[string][]string, len(codes)),
		reverse:     make(map[string]string),
		zeroInitial: maps.Clone(zeroInitial),
	}

	for _, code := range slices.Sorted(maps.Keys(codes)) {
		fragments := slices.Clone(codes[code])
		s.codes[code] = fragments
		for _, fragment := range fragments {
			if prev, ok := s.reverse[fragment]; ok && prev != code {
				return nil, fmt.Errorf("%w: scheme %s, fragment %q in %q and %q",
					ErrAmbiguousFragment, name, fragment, prev, code)
			}
			s.reverse[fragment] = code
		}
	}

	return s, nil
}

func mustScheme(name string, codes map[string][]string, zeroInitial map[string]string) *Scheme {
	s, err := NewScheme(name, codes, zeroInitial)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the configuration name of the scheme.
func (s *Scheme) Name() string {
	return s.name
}

// WithZeroInitial returns a copy of s that encodes syllables without a
// consonant initial through the layout's whole-syllable table instead of
// emitting their first letter. The copy keeps s's name.
func (s *Scheme) WithZeroInitial() *Scheme {
	c := *s
	c.useZeroInitial = true
	return &c
}

// ZeroInitial reports whether the whole-syllable table is in use.
func (s *Scheme) ZeroInitial() bool {
	return s.useZeroInitial
}

// HasZeroInitial reports whether the layout defines a whole-syllable table.
func (s *Scheme) HasZeroInitial() bool {
	return len(s.zeroInitial) > 0
}

// IsIdentity reports whether the scheme leaves syllables unchanged.
func (s *Scheme) IsIdentity() bool {
	return s.name == SchemeFull
}

// Lookup returns the code whose fragment set contains fragment.
func (s *Scheme) Lookup(fragment string) (string, bool) {
	code, ok := s.reverse[fragment]
	return code, ok
}

// Fragments returns the fragments encoded by code.
func (s *Scheme) Fragments(code string) []string {
	return slices.Clone(s.codes[code])
}

// Codes returns every output code of the scheme in ascending order.
func (s *Scheme) Codes() []string {
	return slices.Sorted(maps.Keys(s.codes))
}

var builtinSchemes = map[string]*Scheme{}

func registerBuiltin(s *Scheme) {
	builtinSchemes[s.name] = s
}

// LookupScheme returns the bundled scheme with the given name.
// Matching is case-insensitive.
func LookupScheme(name string) (*Scheme, error) {
	s, ok := builtinSchemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return s, nil
}

// SchemeNames returns the names of all bundled schemes, "full" first.
func SchemeNames() []string {
	names := make([]string, 0, len(builtinSchemes))
	for name := range builtinSchemes {
		if name != SchemeFull {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{SchemeFull}, names...)
}
