package index

import "errors"

var (
	// ErrHandleRequired is returned when a nil handle is registered.
	ErrHandleRequired = errors.New("handle required")

	// ErrEmptyHandleID is returned when a handle reports an empty id.
	ErrEmptyHandleID = errors.New("handle id cannot be empty")

	// ErrDuplicateHandle is returned when two handles share an id.
	ErrDuplicateHandle = errors.New("handle already registered")

	// ErrUnknownHandle is returned when a targeted reload names an unregistered id.
	ErrUnknownHandle = errors.New("unknown handle")

	// ErrCacheStoreRequired is returned when a nil cache store is supplied.
	ErrCacheStoreRequired = errors.New("cache store required")

	// ErrItemsType is returned by SetItems when given items of the wrong type.
	ErrItemsType = errors.New("unexpected items type")
)
