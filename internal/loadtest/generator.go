package loadtest

import (
	"math/rand/v2"

	"github.com/okian/herodex/internal/domain/hero"
)

// GeneratePairs draws n pairs from heroes. Every selfPairEvery-th pair compares
// a hero with itself. The same seed always yields the same pairs.
func GeneratePairs(heroes []hero.Entity, n int, seed uint64) []Pair {
	if len(heroes) == 0 || n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	pairs := make([]Pair, n)
	for i := range pairs {
		a := heroes[rng.IntN(len(heroes))].ID
		b := a
		if (i+1)%selfPairEvery != 0 {
			b = heroes[rng.IntN(len(heroes))].ID
		}
		pairs[i] = Pair{ID1: a, ID2: b}
	}
	return pairs
}
