package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/metrics"
)

// FileStore reads its catalog file on every call, so edits to the file are
// visible immediately. Any read or decode failure is reported as
// hero.ErrUnavailable, never as a miss.
type FileStore struct {
	path   string
	format Format
}

// NewFileStore returns a FileStore for path. The file is read once up front so
// a bad path fails at startup rather than on the first request.
func NewFileStore(path string) (*FileStore, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	s := &FileStore{path: path, format: format}
	heroes, err := s.read()
	if err != nil {
		return nil, err
	}
	metrics.UpdateCatalogSize(len(heroes))
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) read() ([]hero.Entity, error) {
	heroes, err := LoadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hero.ErrUnavailable, err)
	}
	return heroes, nil
}

// Lookup re-reads the catalog and returns the hero with id.
func (s *FileStore) Lookup(_ context.Context, id hero.ID) (hero.Entity, error) {
	start := time.Now()
	defer func() { metrics.RecordRepositoryQueryLatency(msSince(start)) }()

	heroes, err := s.read()
	if err != nil {
		metrics.RecordLookup(metrics.LookupError)
		return hero.Entity{}, err
	}
	for _, h := range heroes {
		if h.ID == id {
			metrics.RecordLookup(metrics.LookupHit)
			return h, nil
		}
	}
	metrics.RecordLookup(metrics.LookupMiss)
	return hero.Entity{}, hero.ErrNotFound
}

// Snapshot reads the file once and returns an in-memory view of that read.
// Lookups on the view never touch the file again.
func (s *FileStore) Snapshot(_ context.Context) (hero.Accessor, error) {
	heroes, err := s.read()
	if err != nil {
		metrics.RecordLookup(metrics.LookupError)
		return nil, err
	}
	return newIndexed(heroes), nil
}

// All re-reads and returns the whole catalog.
func (s *FileStore) All(_ context.Context) ([]hero.Entity, error) {
	return s.read()
}

// Count re-reads the catalog and returns its size.
func (s *FileStore) Count(_ context.Context) (int, error) {
	heroes, err := s.read()
	if err != nil {
		return 0, err
	}
	metrics.UpdateCatalogSize(len(heroes))
	return len(heroes), nil
}
