// Package catalog exposes read-only projections over a hero accessor.
package catalog

import (
	"context"

	"github.com/okian/herodex/internal/domain/hero"
)

// Reader delegates identifier resolution to an Accessor.
type Reader struct {
	accessor hero.Accessor
}

// NewReader returns a Reader over accessor.
func NewReader(accessor hero.Accessor) *Reader {
	if accessor == nil {
		panic("catalog: nil accessor")
	}
	return &Reader{accessor: accessor}
}

// Entity returns the full hero record.
func (r *Reader) Entity(ctx context.Context, id hero.ID) (hero.Entity, error) {
	return r.accessor.Lookup(ctx, id)
}

// Statline returns only the powerstats of a hero.
func (r *Reader) Statline(ctx context.Context, id hero.ID) (hero.Statline, error) {
	e, err := r.accessor.Lookup(ctx, id)
	if err != nil {
		return hero.Statline{}, err
	}
	return e.Powerstats, nil
}

// List returns every hero in catalog order. An empty catalog yields an empty,
// non-nil slice.
func (r *Reader) List(ctx context.Context) ([]hero.Entity, error) {
	all, err := r.accessor.All(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []hero.Entity{}
	}
	return all, nil
}
