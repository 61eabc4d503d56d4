package hero

import "errors"

// Sentinel kinds for catalog access.
var (
	ErrInvalidID   = errors.New("invalid hero id")
	ErrNotFound    = errors.New("hero not found")
	ErrUnavailable = errors.New("catalog unavailable")
)
