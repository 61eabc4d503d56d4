package loadtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/logger"
)

// Validate checks the run configuration.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url is required", ErrInvalidConfig)
	case c.Requests <= 0:
		return fmt.Errorf("%w: requests must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Run executes a complete comparison load run and returns its statistics.
// It fails with ErrMismatch when any answer disagrees with the catalog and
// with ErrRequestsFailed when any compare request did not succeed.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	stats := &Stats{StartTime: time.Now()}
	runID := uuid.NewString()
	log := logger.Get().Named("loadtest")

	seed := config.Seed
	if seed == 0 {
		seed = uint64(stats.StartTime.UnixNano())
	}

	log.Info(ctx, "starting herodex comparison load run",
		logger.String("runID", runID),
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("workers", config.Workers),
		logger.Float64("rps", config.RPS),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("seed", seed))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if _, err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the catalog the answers are checked against
	heroes, err := client.Heroes(ctx)
	if err != nil {
		return stats, fmt.Errorf("catalog fetch failed: %w", err)
	}
	if len(heroes) == 0 {
		return stats, ErrEmptyCatalog
	}
	stats.HeroesFetched = len(heroes)
	byID := make(map[hero.ID]hero.Entity, len(heroes))
	for _, h := range heroes {
		byID[h.ID] = h
	}

	// Step 3: Check the error contract once
	if err := checkErrorContract(ctx, client, heroes); err != nil {
		return stats, fmt.Errorf("error contract check failed: %w", err)
	}

	// Step 4: Compare random pairs in both orders
	pairs := GeneratePairs(heroes, config.Requests, seed)
	stats.Pairs = len(pairs)
	if err := comparePairs(ctx, config, client, pairs, byID, stats, log); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, runID, stats)

	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d of %d pairs", ErrMismatch, stats.Mismatches, stats.Pairs)
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d requests", ErrRequestsFailed, stats.Failed, stats.Requests)
	}
	log.Info(ctx, "load run completed successfully", logger.String("runID", runID))
	return stats, nil
}

func comparePairs(ctx context.Context, config *Config, client *Client, pairs []Pair,
	byID map[hero.ID]hero.Entity, stats *Stats, log logger.Logger,
) error {
	limit := rate.Inf
	if config.RPS > 0 {
		limit = rate.Limit(config.RPS)
	}
	limiter := rate.NewLimiter(limit, max(config.Workers, 2))

	var mu sync.Mutex
	record := func(requests, failed, mismatches int) {
		mu.Lock()
		defer mu.Unlock()
		stats.Requests += requests
		stats.Failed += failed
		stats.Successful += requests - failed
		stats.Mismatches += mismatches
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)
	for _, p := range pairs {
		g.Go(func() error {
			if err := limiter.WaitN(gctx, 2); err != nil {
				return err
			}
			forward, err := client.Compare(gctx, p.ID1, p.ID2)
			if err != nil {
				record(1, 1, 0)
				log.Warn(gctx, "compare failed", logger.Int("id1", int(p.ID1)), logger.Int("id2", int(p.ID2)), logger.Error(err))
				return nil
			}
			reverse, err := client.Compare(gctx, p.ID2, p.ID1)
			if err != nil {
				record(2, 1, 0)
				log.Warn(gctx, "compare failed", logger.Int("id1", int(p.ID2)), logger.Int("id2", int(p.ID1)), logger.Error(err))
				return nil
			}

			want := Expect(byID[p.ID1], byID[p.ID2])
			verr := errors.Join(Verify(want, forward), Verify(Mirror(want), reverse))
			if verr != nil {
				record(2, 0, 1)
				if config.Verbose {
					log.Error(gctx, "comparison mismatch", logger.Int("id1", int(p.ID1)), logger.Int("id2", int(p.ID2)), logger.Error(verr))
				}
				return nil
			}
			record(2, 0, 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("comparison run interrupted: %w", err)
	}
	return nil
}

// checkErrorContract checks the 400 and 404 answers of the compare endpoint.
func checkErrorContract(ctx context.Context, client *Client, heroes []hero.Entity) error {
	known := heroes[0].ID.String()

	status, _, body, err := client.CompareRaw(ctx, known, "")
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("%w: missing id answered %d %q", ErrUnexpected, status, body.Message)
	}

	status, _, body, err = client.CompareRaw(ctx, known, unknownID(heroes))
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("%w: unknown id answered %d %q", ErrUnexpected, status, body.Message)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, runID string, stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.Requests > 0 {
		successRate = float64(stats.Successful) / float64(stats.Requests) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Requests) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.String("runID", runID),
		logger.Int("heroesFetched", stats.HeroesFetched),
		logger.Int("pairs", stats.Pairs),
		logger.Int("requests", stats.Requests),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("mismatches", stats.Mismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
