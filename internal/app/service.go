// Package service wires the catalog, the comparator and the projections into
// the dependency bundle consumed by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	repository "github.com/okian/herodex/internal/adapters/repository"
	"github.com/okian/herodex/internal/domain/catalog"
	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/logger"
	"github.com/okian/herodex/pkg/metrics"
)

// ErrNotStarted is returned when the service is used before Start. It wraps
// hero.ErrUnavailable so callers treat it like any other catalog outage.
var ErrNotStarted = fmt.Errorf("%w: service not started", hero.ErrUnavailable)

// Error kinds used for metrics labels and logs.
const (
	KindValidation  = "validation"
	KindNotFound    = "not_found"
	KindUnavailable = "unavailable"
	KindInternal    = "internal"
)

// Service implements the API dependencies for the hero catalog.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	comparator *compare.Comparator
	reader     *catalog.Reader

	source    repository.Source
	reload    bool
	fetchOpts []repository.FetchOption

	started     bool
	comparisons atomic.Int64

	logger logger.Logger
	tracer trace.Tracer
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where the catalog is loaded from.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithReload makes the service re-read the catalog file on every call.
func WithReload(reload bool) Option {
	return func(s *Service) {
		s.reload = reload
	}
}

// WithFetchOptions configures remote catalog fetching.
func WithFetchOptions(opts ...repository.FetchOption) Option {
	return func(s *Service) {
		s.fetchOpts = append(s.fetchOpts, opts...)
	}
}

// WithStore uses an already-built store instead of loading one from the source.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// New constructs a Service. Nothing is loaded until Start.
func New(opts ...Option) *Service {
	s := &Service{
		tracer: otel.Tracer("github.com/okian/herodex/internal/app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog (unless a store was injected) and readies the service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		store, err := s.openStore(ctx)
		if err != nil {
			return err
		}
		s.store = store
	}

	s.comparator = compare.New(s.store)
	s.reader = catalog.NewReader(s.store)
	s.started = true

	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn(ctx, "catalog count failed", logger.Error(err))
	}
	s.logger.Info(ctx, "hero service started",
		logger.String("source", s.source.String()),
		logger.Bool("reload", s.reload),
		logger.Int("heroes", count),
	)
	return nil
}

func (s *Service) openStore(ctx context.Context) (repository.Store, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogLoadDuration(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if s.reload {
		store, err := repository.NewFileStore(s.source.Path)
		if err != nil {
			return nil, fmt.Errorf("open catalog %s: %w", s.source, err)
		}
		return store, nil
	}

	heroes, err := repository.Load(ctx, s.source, s.fetchOpts...)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", s.source, err)
	}
	store, err := repository.NewMemoryStore(heroes)
	if err != nil {
		return nil, fmt.Errorf("index catalog %s: %w", s.source, err)
	}
	s.logger.Info(ctx, "catalog loaded",
		logger.String("source", s.source.String()),
		logger.Int("heroes", len(heroes)),
		logger.String("took", time.Since(start).String()),
	)
	return store, nil
}

// Stop marks the service stopped. The catalog is immutable, so there is
// nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "hero service stopped")
}

func (s *Service) ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Heroes returns the full catalog in order.
func (s *Service) Heroes(ctx context.Context) ([]hero.Entity, error) {
	if !s.ready() {
		return nil, ErrNotStarted
	}
	ctx, span := s.tracer.Start(ctx, "Service.Heroes")
	defer span.End()

	heroes, err := s.reader.List(ctx)
	if err != nil {
		s.fail(ctx, span, "list heroes failed", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("heroes.count", len(heroes)))
	return heroes, nil
}

// Hero returns one hero by id.
func (s *Service) Hero(ctx context.Context, id hero.ID) (hero.Entity, error) {
	if !s.ready() {
		return hero.Entity{}, ErrNotStarted
	}
	ctx, span := s.tracer.Start(ctx, "Service.Hero", trace.WithAttributes(attribute.Int("hero.id", int(id))))
	defer span.End()

	e, err := s.reader.Entity(ctx, id)
	if err != nil {
		s.fail(ctx, span, "get hero failed", err, logger.Int("id", int(id)))
		return hero.Entity{}, err
	}
	return e, nil
}

// Powerstats returns only the statline of one hero.
func (s *Service) Powerstats(ctx context.Context, id hero.ID) (hero.Statline, error) {
	if !s.ready() {
		return hero.Statline{}, ErrNotStarted
	}
	ctx, span := s.tracer.Start(ctx, "Service.Powerstats", trace.WithAttributes(attribute.Int("hero.id", int(id))))
	defer span.End()

	stats, err := s.reader.Statline(ctx, id)
	if err != nil {
		s.fail(ctx, span, "get powerstats failed", err, logger.Int("id", int(id)))
		return hero.Statline{}, err
	}
	return stats, nil
}

// Compare validates the raw ids and compares the two heroes.
func (s *Service) Compare(ctx context.Context, id1, id2 string) (compare.Result, error) {
	if !s.ready() {
		return compare.Result{}, ErrNotStarted
	}
	ctx, span := s.tracer.Start(ctx, "Service.Compare", trace.WithAttributes(
		attribute.String("compare.id1", id1),
		attribute.String("compare.id2", id2),
	))
	defer span.End()

	res, err := s.comparator.Compare(ctx, id1, id2)
	if err != nil {
		metrics.RecordComparisonError(Kind(err))
		s.fail(ctx, span, "compare failed", err, logger.String("id1", id1), logger.String("id2", id2))
		return compare.Result{}, err
	}

	s.comparisons.Add(1)
	metrics.RecordComparison(res.Overall.String())
	first, second := res.Wins()
	span.SetAttributes(
		attribute.String("compare.overall", res.Overall.String()),
		attribute.Int("compare.wins1", first),
		attribute.Int("compare.wins2", second),
	)
	return res, nil
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	if !s.ready() {
		return 0, ErrNotStarted
	}
	return s.store.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"source":      s.source.String(),
		"reload":      s.reload,
		"comparisons": s.comparisons.Load(),
	}
	if s.started {
		if n, err := s.store.Count(context.Background()); err == nil {
			stats["heroes"] = n
		}
	}
	return stats
}

// fail logs and annotates span for err. Expected outcomes (bad input, unknown
// hero) are logged at debug; everything else at error.
func (s *Service) fail(ctx context.Context, span trace.Span, msg string, err error, fields ...logger.Field) {
	kind := Kind(err)
	fields = append(fields, logger.String("kind", kind), logger.Error(err))
	span.SetAttributes(attribute.String("error.kind", kind))
	switch kind {
	case KindValidation, KindNotFound:
		s.logger.Debug(ctx, msg, fields...)
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(ctx, msg, fields...)
	}
}

// Kind classifies err into one of the Kind* constants.
func Kind(err error) string {
	switch {
	case errors.Is(err, compare.ErrValidation), errors.Is(err, hero.ErrInvalidID):
		return KindValidation
	case errors.Is(err, hero.ErrNotFound):
		return KindNotFound
	case errors.Is(err, hero.ErrUnavailable):
		return KindUnavailable
	default:
		return KindInternal
	}
}
