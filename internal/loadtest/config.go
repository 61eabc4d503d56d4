package loadtest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
)

// Config holds configuration for a comparison load run
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of hero pairs to compare
	Workers  int           // Maximum in-flight pairs
	RPS      float64       // Request rate cap; zero or less means unlimited
	Timeout  time.Duration // HTTP request timeout
	Seed     uint64        // Pair generator seed; zero picks one from the clock
	Verbose  bool          // Log every mismatch
}

// Pair is one comparison to run in both argument orders.
type Pair struct {
	ID1 hero.ID
	ID2 hero.ID
}

// Winner decodes the wire encoding of a winner: 1, 2 or "tie".
type Winner compare.Winner

// UnmarshalJSON implements json.Unmarshaler.
func (w *Winner) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "1":
		*w = Winner(compare.First)
	case "2":
		*w = Winner(compare.Second)
	case `"tie"`:
		*w = Winner(compare.Tie)
	default:
		return fmt.Errorf("%w: %s", ErrBadWinner, data)
	}
	return nil
}

// CategoryResult is one row of a comparison response.
type CategoryResult struct {
	Name     string `json:"name"`
	Winner   Winner `json:"winner"`
	ID1Value int    `json:"id1_value"`
	ID2Value int    `json:"id2_value"`
}

// Comparison is the body of GET /api/heroes/compare.
type Comparison struct {
	ID1        int              `json:"id1"`
	ID2        int              `json:"id2"`
	Categories []CategoryResult `json:"categories"`
	Overall    Winner           `json:"overall_winner"`
}

// ErrorBody is the body of a failed API call.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats holds run statistics
type Stats struct {
	HeroesFetched int
	Pairs         int
	Requests      int
	Successful    int
	Failed        int
	Mismatches    int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

var _ json.Unmarshaler = (*Winner)(nil)
