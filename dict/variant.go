package dict

import (
	"fmt"
	"strings"
)

// Variant selects which character forms the dictionary is built from.
type Variant int

const (
	// VariantSimplified folds every character to its simplified form.
	VariantSimplified Variant = iota + 1
	// VariantTraditional folds every character to its traditional form.
	VariantTraditional
)

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantSimplified:
		return "simplified"
	case VariantTraditional:
		return "traditional"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a configuration name to a Variant.
// Matching is case-insensitive.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simplified":
		return VariantSimplified, nil
	case "traditional":
		return VariantTraditional, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// VariantFor returns the variant selected by the traditional flag.
func VariantFor(traditional bool) Variant {
	if traditional {
		return VariantTraditional
	}
	return VariantSimplified
}
