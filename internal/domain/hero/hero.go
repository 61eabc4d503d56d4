// Package hero contains the catalog entity model shared across layers.
package hero

import (
	"context"
	"fmt"
	"strconv"
)

// ID identifies a hero within the catalog. IDs are stable across requests.
type ID int

// String renders the id in its decimal form.
func (id ID) String() string { return strconv.Itoa(int(id)) }

// ParseID parses a raw identifier as received at the boundary.
// Empty and non-integer input is rejected; no trimming or coercion is applied.
func ParseID(raw string) (ID, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return ID(n), nil
}

// Category names one of the six powerstats.
type Category string

// Powerstat categories in canonical order.
const (
	Intelligence Category = "intelligence"
	Strength     Category = "strength"
	Speed        Category = "speed"
	Durability   Category = "durability"
	Power        Category = "power"
	Combat       Category = "combat"
)

// Categories returns the six categories in canonical display and comparison order.
func Categories() []Category {
	return []Category{Intelligence, Strength, Speed, Durability, Power, Combat}
}

// Statline is the six-category numeric profile of a hero. Field order matches
// the canonical category order so encoders preserve it.
type Statline struct {
	Intelligence int `json:"intelligence" yaml:"intelligence" validate:"min=0,max=100"`
	Strength     int `json:"strength" yaml:"strength" validate:"min=0,max=100"`
	Speed        int `json:"speed" yaml:"speed" validate:"min=0,max=100"`
	Durability   int `json:"durability" yaml:"durability" validate:"min=0,max=100"`
	Power        int `json:"power" yaml:"power" validate:"min=0,max=100"`
	Combat       int `json:"combat" yaml:"combat" validate:"min=0,max=100"`
}

// Value returns the value recorded for c. Unknown categories report false.
func (s Statline) Value(c Category) (int, bool) {
	switch c {
	case Intelligence:
		return s.Intelligence, true
	case Strength:
		return s.Strength, true
	case Speed:
		return s.Speed, true
	case Durability:
		return s.Durability, true
	case Power:
		return s.Power, true
	case Combat:
		return s.Combat, true
	}
	return 0, false
}

// Entity is one cataloged hero. Entities are immutable once loaded.
type Entity struct {
	ID         ID       `json:"id" yaml:"id" validate:"gte=1"`
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Image      string   `json:"image" yaml:"image"`
	Powerstats Statline `json:"powerstats" yaml:"powerstats"`
}

// Accessor resolves identifiers against a catalog.
//
// Lookup returns ErrNotFound when the catalog has no such hero and an error
// wrapping ErrUnavailable when the backing data could not be read.
type Accessor interface {
	Lookup(ctx context.Context, id ID) (Entity, error)
	All(ctx context.Context) ([]Entity, error)
}

// Snapshotter is implemented by accessors whose data can change between
// calls. Snapshot returns a view that stays fixed for one operation.
type Snapshotter interface {
	Snapshot(ctx context.Context) (Accessor, error)
}
