package loadtest

import "errors"

// Sentinel errors for the load run.
var (
	ErrUnhealthy      = errors.New("service unhealthy")
	ErrEmptyCatalog   = errors.New("catalog is empty")
	ErrUnexpected     = errors.New("unexpected response")
	ErrBadWinner      = errors.New("unrecognized winner encoding")
	ErrMismatch       = errors.New("comparison mismatch")
	ErrRequestsFailed = errors.New("comparison requests failed")
	ErrInvalidConfig  = errors.New("invalid load test config")
)
