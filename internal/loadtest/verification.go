package loadtest

import (
	"fmt"

	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
)

// Expect recomputes the comparison of a and b from catalog data.
func Expect(a, b hero.Entity) Comparison {
	res := compare.Entities(a, b)
	out := Comparison{
		ID1:        int(res.ID1),
		ID2:        int(res.ID2),
		Categories: make([]CategoryResult, len(res.Categories)),
		Overall:    Winner(res.Overall),
	}
	for i, c := range res.Categories {
		out.Categories[i] = CategoryResult{
			Name:     string(c.Category),
			Winner:   Winner(c.Winner),
			ID1Value: c.Value1,
			ID2Value: c.Value2,
		}
	}
	return out
}

// Mirror returns c as it must look with the arguments swapped.
func Mirror(c Comparison) Comparison {
	out := Comparison{
		ID1:        c.ID2,
		ID2:        c.ID1,
		Categories: make([]CategoryResult, len(c.Categories)),
		Overall:    Winner(compare.Winner(c.Overall).Flip()),
	}
	for i, r := range c.Categories {
		out.Categories[i] = CategoryResult{
			Name:     r.Name,
			Winner:   Winner(compare.Winner(r.Winner).Flip()),
			ID1Value: r.ID2Value,
			ID2Value: r.ID1Value,
		}
	}
	return out
}

// Verify checks that got equals want row by row.
func Verify(want, got Comparison) error {
	if got.ID1 != want.ID1 || got.ID2 != want.ID2 {
		return fmt.Errorf("%w: ids %d/%d, want %d/%d", ErrMismatch, got.ID1, got.ID2, want.ID1, want.ID2)
	}
	if len(got.Categories) != len(want.Categories) {
		return fmt.Errorf("%w: %d categories, want %d", ErrMismatch, len(got.Categories), len(want.Categories))
	}
	for i := range want.Categories {
		if got.Categories[i] != want.Categories[i] {
			return fmt.Errorf("%w: category %d is %+v, want %+v", ErrMismatch, i, got.Categories[i], want.Categories[i])
		}
	}
	if got.Overall != want.Overall {
		return fmt.Errorf("%w: overall %s, want %s", ErrMismatch,
			compare.Winner(got.Overall), compare.Winner(want.Overall))
	}
	return nil
}
