package loadtest

import (
	"io"
)

// ShowHelp prints usage information for the load tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Herodex Comparison Load Tool
============================

Hammers GET /api/heroes/compare with random hero pairs, asks for every pair in
both orders and checks each answer against the catalog served by /api/heroes.

Usage:
  go run ./cmd/load-compare [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of hero pairs to compare (default 1000)
  -workers int
        Maximum pairs in flight (default 8)
  -rps float
        Request rate cap, 0 for unlimited (default 0)
  -timeout duration
        HTTP request timeout (default 10s)
  -seed uint
        Pair generator seed, 0 for time based (default 0)
  -format string
        Log format: text or json (default "text")
  -verbose
        Log every mismatch
  -help
        Show this help message

Examples:
  go run ./cmd/load-compare -requests 50000 -workers 32 -rps 2000
  go run ./cmd/load-compare -seed 42 -verbose
`)
}
