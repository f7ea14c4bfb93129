package search

import "errors"

var (
	// ErrSourceRequired is returned when a searcher is created without sources.
	ErrSourceRequired = errors.New("at least one source required")

	// ErrMatcherRequired is returned when a nil matcher is supplied.
	ErrMatcherRequired = errors.New("matcher required")
)
