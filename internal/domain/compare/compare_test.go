package compare_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedCatalog is an in-memory accessor that counts lookups.
type fixedCatalog struct {
	heroes  map[hero.ID]hero.Entity
	err     error
	lookups int
}

func newFixedCatalog(heroes ...hero.Entity) *fixedCatalog {
	c := &fixedCatalog{heroes: make(map[hero.ID]hero.Entity)}
	for _, h := range heroes {
		c.heroes[h.ID] = h
	}
	return c
}

func (c *fixedCatalog) Lookup(_ context.Context, id hero.ID) (hero.Entity, error) {
	c.lookups++
	if c.err != nil {
		return hero.Entity{}, c.err
	}
	h, ok := c.heroes[id]
	if !ok {
		return hero.Entity{}, hero.ErrNotFound
	}
	return h, nil
}

func (c *fixedCatalog) All(_ context.Context) ([]hero.Entity, error) {
	out := make([]hero.Entity, 0, len(c.heroes))
	for _, h := range c.heroes {
		out = append(out, h)
	}
	return out, nil
}

// versionedCatalog hands out a fresh view per snapshot and bumps its version
// after each one, like a file rewritten between reads.
type versionedCatalog struct {
	*fixedCatalog
	versions  []*fixedCatalog
	snapshots int
	err       error
}

func (c *versionedCatalog) Snapshot(_ context.Context) (hero.Accessor, error) {
	if c.err != nil {
		return nil, c.err
	}
	view := c.versions[c.snapshots%len(c.versions)]
	c.snapshots++
	return view, nil
}

var (
	brainiac = hero.Entity{ID: 1, Name: "Brainiac", Powerstats: hero.Statline{
		Intelligence: 100, Strength: 18, Speed: 23, Durability: 28, Power: 32, Combat: 32,
	}}
	bruiser = hero.Entity{ID: 2, Name: "Bruiser", Powerstats: hero.Statline{
		Intelligence: 90, Strength: 55, Speed: 43, Durability: 80, Power: 62, Combat: 82,
	}}
	// wins intelligence, strength and speed against splitB; loses the rest
	splitA = hero.Entity{ID: 3, Name: "Split A", Powerstats: hero.Statline{
		Intelligence: 60, Strength: 60, Speed: 60, Durability: 10, Power: 10, Combat: 10,
	}}
	splitB = hero.Entity{ID: 4, Name: "Split B", Powerstats: hero.Statline{
		Intelligence: 50, Strength: 50, Speed: 50, Durability: 90, Power: 90, Combat: 90,
	}}
	twin = hero.Entity{ID: 5, Name: "Twin", Powerstats: brainiac.Powerstats}
)

func TestEntities(t *testing.T) {
	Convey("Given two heroes where the second wins five categories", t, func() {
		res := compare.Entities(brainiac, bruiser)

		Convey("Then categories come back in canonical order", func() {
			So(res.Categories, ShouldHaveLength, 6)
			for i, cat := range hero.Categories() {
				So(res.Categories[i].Category, ShouldEqual, cat)
			}
		})

		Convey("And the first hero wins intelligence only", func() {
			So(res.Categories[0].Winner, ShouldEqual, compare.First)
			So(res.Categories[0].Value1, ShouldEqual, 100)
			So(res.Categories[0].Value2, ShouldEqual, 90)
			for _, c := range res.Categories[1:] {
				So(c.Winner, ShouldEqual, compare.Second)
			}
		})

		Convey("And the second hero wins overall", func() {
			first, second := res.Wins()
			So(first, ShouldEqual, 1)
			So(second, ShouldEqual, 5)
			So(res.Overall, ShouldEqual, compare.Second)
		})
	})

	Convey("Given two heroes with identical statlines", t, func() {
		res := compare.Entities(brainiac, twin)

		Convey("Then every category and the overall result tie", func() {
			for _, c := range res.Categories {
				So(c.Winner, ShouldEqual, compare.Tie)
			}
			So(res.Overall, ShouldEqual, compare.Tie)
		})
	})

	Convey("Given a three-three split", t, func() {
		res := compare.Entities(splitA, splitB)

		Convey("Then the overall result is a tie", func() {
			first, second := res.Wins()
			So(first, ShouldEqual, 3)
			So(second, ShouldEqual, 3)
			So(res.Overall, ShouldEqual, compare.Tie)
		})
	})

	Convey("Given a mix of ties and wins that balances out", t, func() {
		a := hero.Entity{ID: 10, Powerstats: hero.Statline{Intelligence: 5, Strength: 1, Speed: 7, Durability: 7, Power: 7, Combat: 7}}
		b := hero.Entity{ID: 11, Powerstats: hero.Statline{Intelligence: 1, Strength: 5, Speed: 7, Durability: 7, Power: 7, Combat: 7}}
		res := compare.Entities(a, b)

		Convey("Then the overall result is a tie", func() {
			So(res.Overall, ShouldEqual, compare.Tie)
		})
	})

	Convey("Given any pair of heroes", t, func() {
		pairs := [][2]hero.Entity{{brainiac, bruiser}, {splitA, splitB}, {bruiser, twin}, {splitB, brainiac}}

		Convey("Then swapping the arguments mirrors the result", func() {
			for _, p := range pairs {
				ab := compare.Entities(p[0], p[1])
				ba := compare.Entities(p[1], p[0])
				for i := range ab.Categories {
					So(ba.Categories[i].Winner, ShouldEqual, ab.Categories[i].Winner.Flip())
					So(ba.Categories[i].Value1, ShouldEqual, ab.Categories[i].Value2)
					So(ba.Categories[i].Value2, ShouldEqual, ab.Categories[i].Value1)
				}
				So(ba.Overall, ShouldEqual, ab.Overall.Flip())
			}
		})

		Convey("And comparing a hero to itself ties everywhere", func() {
			for _, h := range []hero.Entity{brainiac, bruiser, splitA, splitB} {
				res := compare.Entities(h, h)
				for _, c := range res.Categories {
					So(c.Winner, ShouldEqual, compare.Tie)
				}
				So(res.Overall, ShouldEqual, compare.Tie)
			}
		})
	})
}

func TestComparator_Compare(t *testing.T) {
	Convey("Given a comparator over a fixed catalog", t, func() {
		ctx := context.Background()
		catalog := newFixedCatalog(brainiac, bruiser)
		cmp := compare.New(catalog)

		Convey("When both ids resolve", func() {
			res, err := cmp.Compare(ctx, "1", "2")

			Convey("Then the ids are echoed and the result is complete", func() {
				So(err, ShouldBeNil)
				So(res.ID1, ShouldEqual, hero.ID(1))
				So(res.ID2, ShouldEqual, hero.ID(2))
				So(res.Categories, ShouldHaveLength, 6)
				So(res.Overall, ShouldEqual, compare.Second)
			})
		})

		Convey("When the second id is empty", func() {
			_, err := cmp.Compare(ctx, "1", "")

			Convey("Then validation fails before any lookup", func() {
				So(errors.Is(err, compare.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "both hero IDs are required")
				So(catalog.lookups, ShouldEqual, 0)
			})
		})

		Convey("When an id is not numeric", func() {
			_, err := cmp.Compare(ctx, "abc", "2")

			Convey("Then validation fails before any lookup", func() {
				So(errors.Is(err, compare.ErrValidation), ShouldBeTrue)
				So(catalog.lookups, ShouldEqual, 0)
			})
		})

		Convey("When an id has surrounding whitespace", func() {
			_, err := cmp.Compare(ctx, " 1", "2")

			Convey("Then it is rejected as unparsable", func() {
				So(errors.Is(err, compare.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When one id is absent from the catalog", func() {
			_, errSecond := cmp.Compare(ctx, "1", "99999")
			_, errFirst := cmp.Compare(ctx, "99999", "1")

			Convey("Then both orders report not found", func() {
				So(errors.Is(errSecond, hero.ErrNotFound), ShouldBeTrue)
				So(errors.Is(errFirst, hero.ErrNotFound), ShouldBeTrue)
				So(errors.Is(errSecond, compare.ErrValidation), ShouldBeFalse)
			})
		})

		Convey("When the catalog itself fails", func() {
			catalog.err = hero.ErrUnavailable
			_, err := cmp.Compare(ctx, "1", "2")

			Convey("Then the failure is propagated, not reported as not found", func() {
				So(errors.Is(err, hero.ErrUnavailable), ShouldBeTrue)
				So(errors.Is(err, hero.ErrNotFound), ShouldBeFalse)
			})
		})
	})

	Convey("Given a nil accessor", t, func() {
		Convey("Then construction panics", func() {
			So(func() { compare.New(nil) }, ShouldPanic)
		})
	})
}

func TestComparator_Snapshot(t *testing.T) {
	Convey("Given an accessor that can change between reads", t, func() {
		ctx := context.Background()
		stale := newFixedCatalog(brainiac, bruiser)
		weaker := bruiser
		weaker.Powerstats = hero.Statline{}
		fresh := newFixedCatalog(brainiac, weaker)
		cat := &versionedCatalog{
			fixedCatalog: newFixedCatalog(),
			versions:     []*fixedCatalog{stale, fresh},
		}
		cmp := compare.New(cat)

		Convey("When comparing two heroes", func() {
			res, err := cmp.Compare(ctx, "1", "2")

			Convey("Then both come from one snapshot", func() {
				So(err, ShouldBeNil)
				So(cat.snapshots, ShouldEqual, 1)
				So(stale.lookups, ShouldEqual, 2)
				So(fresh.lookups, ShouldEqual, 0)
				So(cat.lookups, ShouldEqual, 0)
				So(res.Overall, ShouldEqual, compare.Second)
			})
		})

		Convey("When the snapshot cannot be taken", func() {
			cat.err = hero.ErrUnavailable
			_, err := cmp.Compare(ctx, "1", "2")

			Convey("Then the failure is reported as unavailable", func() {
				So(errors.Is(err, hero.ErrUnavailable), ShouldBeTrue)
				So(cat.lookups, ShouldEqual, 0)
			})
		})

		Convey("When an id is invalid", func() {
			_, err := cmp.Compare(ctx, "1", "x")

			Convey("Then no snapshot is taken", func() {
				So(errors.Is(err, compare.ErrValidation), ShouldBeTrue)
				So(cat.snapshots, ShouldEqual, 0)
			})
		})
	})
}

func TestWinner(t *testing.T) {
	Convey("Given the winner values", t, func() {
		Convey("Then flipping swaps first and second only", func() {
			So(compare.First.Flip(), ShouldEqual, compare.Second)
			So(compare.Second.Flip(), ShouldEqual, compare.First)
			So(compare.Tie.Flip(), ShouldEqual, compare.Tie)
		})

		Convey("And names are stable", func() {
			So(compare.First.String(), ShouldEqual, "first")
			So(compare.Second.String(), ShouldEqual, "second")
			So(compare.Tie.String(), ShouldEqual, "tie")
			So(compare.Winner(0).String(), ShouldEqual, "unknown")
		})
	})
}
