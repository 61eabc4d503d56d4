package repository

import "errors"

// Sentinel kinds for catalog loading.
var (
	ErrDuplicateID       = errors.New("duplicate hero id")
	ErrInvalidRecord     = errors.New("invalid hero record")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrFetch             = errors.New("catalog fetch failed")
	ErrNoSource          = errors.New("no catalog source configured")
)
