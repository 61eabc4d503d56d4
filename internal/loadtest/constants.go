package loadtest

import "time"

// Default configuration constants.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultRequests = 1000
	DefaultWorkers  = 8
	DefaultTimeout  = 10 * time.Second
)

// Generator tuning.
const (
	// selfPairEvery makes every n-th generated pair a self comparison.
	selfPairEvery        = 10
	PercentageMultiplier = 100
	unknownIDOffset      = 1_000_000
)
