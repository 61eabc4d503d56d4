// Package repository provides catalog accessors and the loaders that build them.
package repository

import (
	"context"

	"github.com/okian/herodex/internal/domain/hero"
)

// Store is a hero accessor that can also report its size.
type Store interface {
	hero.Accessor

	// Count returns the number of heroes currently in the catalog.
	Count(ctx context.Context) (int, error)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)

	_ hero.Snapshotter = (*FileStore)(nil)
)
