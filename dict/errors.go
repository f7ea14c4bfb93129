package dict

import "errors"

var (
	// ErrUnknownVariant is returned when a dictionary variant name is not recognized.
	ErrUnknownVariant = errors.New("unknown dictionary variant")

	// ErrUnknownScheme is returned when a double pinyin scheme name is not recognized.
	ErrUnknownScheme = errors.New("unknown double pinyin scheme")

	// ErrAmbiguousFragment is returned when a scheme maps one fragment to two codes.
	ErrAmbiguousFragment = errors.New("fragment mapped to more than one code")

	// ErrMisaligned is returned when table sequences differ in length.
	ErrMisaligned = errors.New("dictionary sequences are not aligned")

	// ErrSchemeRequired is returned when a nil scheme is passed to a conversion.
	ErrSchemeRequired = errors.New("scheme required")
)
