// Package compare ranks two heroes category by category and declares an
// overall winner.
package compare

import (
	"context"
	"fmt"

	"github.com/okian/herodex/internal/domain/hero"
)

// CategoryResult is the outcome for a single powerstat.
type CategoryResult struct {
	Category hero.Category
	Value1   int
	Value2   int
	Winner   Winner
}

// Result is a full comparison. Categories always holds six entries in
// canonical order.
type Result struct {
	ID1        hero.ID
	ID2        hero.ID
	Categories []CategoryResult
	Overall    Winner
}

// Wins returns how many categories each side won. Ties count for neither.
func (r Result) Wins() (first, second int) {
	for _, c := range r.Categories {
		switch c.Winner {
		case First:
			first++
		case Second:
			second++
		}
	}
	return first, second
}

// Comparator validates input, resolves both heroes and compares them.
// It holds no mutable state and is safe for concurrent use.
type Comparator struct {
	accessor hero.Accessor
}

// New returns a Comparator reading from accessor.
func New(accessor hero.Accessor) *Comparator {
	if accessor == nil {
		panic("compare: nil accessor")
	}
	return &Comparator{accessor: accessor}
}

// Compare parses both raw identifiers, looks them up and compares them.
//
// Errors: ErrValidation when either id is missing or not an integer (checked
// before any lookup), hero.ErrNotFound when either hero is absent, and the
// accessor's error (wrapping hero.ErrUnavailable) when the catalog fails.
func (c *Comparator) Compare(ctx context.Context, raw1, raw2 string) (Result, error) {
	id1, err1 := hero.ParseID(raw1)
	id2, err2 := hero.ParseID(raw2)
	if err1 != nil || err2 != nil {
		return Result{}, ErrValidation
	}
	return c.CompareIDs(ctx, id1, id2)
}

// CompareIDs looks up two already-parsed ids and compares them. When the
// accessor is a hero.Snapshotter both heroes come from the same snapshot.
func (c *Comparator) CompareIDs(ctx context.Context, id1, id2 hero.ID) (Result, error) {
	acc := c.accessor
	if s, ok := acc.(hero.Snapshotter); ok {
		view, err := s.Snapshot(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("snapshot catalog: %w", err)
		}
		acc = view
	}

	a, err := acc.Lookup(ctx, id1)
	if err != nil {
		return Result{}, fmt.Errorf("lookup first hero: %w", err)
	}
	b, err := acc.Lookup(ctx, id2)
	if err != nil {
		return Result{}, fmt.Errorf("lookup second hero: %w", err)
	}
	res := Entities(a, b)
	// echo the requested ids rather than whatever the accessor returned
	res.ID1, res.ID2 = id1, id2
	return res, nil
}

// Entities compares two heroes. It is pure and never fails.
func Entities(a, b hero.Entity) Result {
	cats := hero.Categories()
	res := Result{
		ID1:        a.ID,
		ID2:        b.ID,
		Categories: make([]CategoryResult, 0, len(cats)),
	}
	var winsA, winsB int
	for _, cat := range cats {
		va, _ := a.Powerstats.Value(cat)
		vb, _ := b.Powerstats.Value(cat)
		w := decide(va, vb)
		switch w {
		case First:
			winsA++
		case Second:
			winsB++
		}
		res.Categories = append(res.Categories, CategoryResult{
			Category: cat,
			Value1:   va,
			Value2:   vb,
			Winner:   w,
		})
	}
	res.Overall = decide(winsA, winsB)
	return res
}
