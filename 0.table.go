package main

import (
	"math/rand/v2"
)

// WeightedEntry pairs one outcome with its relative weight. Weights are
// relative, not normalized; a zero weight keeps the entry in the table but
// it can never be drawn.
type WeightedEntry[T any] struct {
	Outcome T
	Weight  float64
}

// WeightedTable draws outcomes proportionally to their weights. Entries keep
// insertion order so draws from a seeded generator are reproducible.
type WeightedTable[T any] struct {
	entries []WeightedEntry[T]
	total   float64
}

func NewWeightedTable[T any](entries ...WeightedEntry[T]) *WeightedTable[T] {
	t := &WeightedTable[T]{entries: entries}
	for _, e := range entries {
		t.total += e.Weight
	}
	return t
}

func (t *WeightedTable[T]) Len() int {
	return len(t.entries)
}

func (t *WeightedTable[T]) TotalWeight() float64 {
	return t.total
}

// Choice draws a single outcome. A table with no positive weight returns the
// zero value.
func (t *WeightedTable[T]) Choice(rng *rand.Rand) T {
	var zero T
	if t.total <= 0 {
		return zero
	}
	r := rng.Float64() * t.total
	for _, e := range t.entries {
		if e.Weight <= 0 {
			continue
		}
		r -= e.Weight
		if r < 0 {
			return e.Outcome
		}
	}
	// Float accumulation can leave r at a hair above zero after the last
	// entry; fall back to the last drawable outcome.
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Weight > 0 {
			return t.entries[i].Outcome
		}
	}
	return zero
}

// SampleN draws up to k distinct outcomes without replacement, renormalizing
// over the remaining entries after each draw. When k exceeds the number of
// positive-weight entries every drawable outcome is returned once and the
// result is shorter than k.
func (t *WeightedTable[T]) SampleN(rng *rand.Rand, k int) []T {
	weights := make([]float64, len(t.entries))
	remaining := 0.0
	for i, e := range t.entries {
		if e.Weight > 0 {
			weights[i] = e.Weight
			remaining += e.Weight
		}
	}
	out := make([]T, 0, k)
	for len(out) < k && remaining > 0 {
		r := rng.Float64() * remaining
		picked := -1
		for i, w := range weights {
			if w <= 0 {
				continue
			}
			r -= w
			if r < 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			for i := len(weights) - 1; i >= 0; i-- {
				if weights[i] > 0 {
					picked = i
					break
				}
			}
			if picked < 0 {
				break
			}
		}
		out = append(out, t.entries[picked].Outcome)
		remaining -= weights[picked]
		weights[picked] = 0
	}
	return out
}
