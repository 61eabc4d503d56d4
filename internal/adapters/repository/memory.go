package repository

import (
	"context"
	"time"

	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/metrics"
)

// MemoryStore is an immutable, indexed catalog held in memory. It is safe for
// concurrent use without locking because nothing mutates it after construction.
type MemoryStore struct {
	heroes []hero.Entity
	index  map[hero.ID]int
}

// NewMemoryStore validates heroes and builds an index over them. The slice is
// copied; catalog order is the order given.
func NewMemoryStore(heroes []hero.Entity) (*MemoryStore, error) {
	if err := Validate(heroes); err != nil {
		return nil, err
	}
	s := newIndexed(heroes)
	metrics.UpdateCatalogSize(len(s.heroes))
	return s, nil
}

// newIndexed copies and indexes already validated heroes.
func newIndexed(heroes []hero.Entity) *MemoryStore {
	s := &MemoryStore{
		heroes: make([]hero.Entity, len(heroes)),
		index:  make(map[hero.ID]int, len(heroes)),
	}
	copy(s.heroes, heroes)
	for i, h := range s.heroes {
		s.index[h.ID] = i
	}
	return s
}

// Lookup returns the hero with id or hero.ErrNotFound.
func (s *MemoryStore) Lookup(_ context.Context, id hero.ID) (hero.Entity, error) {
	start := time.Now()
	defer func() { metrics.RecordRepositoryQueryLatency(msSince(start)) }()

	i, ok := s.index[id]
	if !ok {
		metrics.RecordLookup(metrics.LookupMiss)
		return hero.Entity{}, hero.ErrNotFound
	}
	metrics.RecordLookup(metrics.LookupHit)
	return s.heroes[i], nil
}

// All returns a copy of the catalog in order.
func (s *MemoryStore) All(_ context.Context) ([]hero.Entity, error) {
	out := make([]hero.Entity, len(s.heroes))
	copy(out, s.heroes)
	return out, nil
}

// Count returns the catalog size.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	return len(s.heroes), nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
