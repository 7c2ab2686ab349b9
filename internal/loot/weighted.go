package loot

import "math/rand/v2"

// Weighted pairs an option with its selection weight.
type Weighted[T any] struct {
	Option T
	Weight float64
}

// Pick draws one option proportionally to the weights: a uniform draw
// in [0, totalWeight) walks the options in order until the running
// value crosses zero. Non-positive weights never win. When floating
// point roundoff prevents a crossing the first eligible option wins.
// Returns the zero value and false when no weight is positive.
func Pick[T any](rng *rand.Rand, options []Weighted[T]) (T, bool) {
	var zero T
	total := 0.0
	for _, o := range options {
		if o.Weight > 0 {
			total += o.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	r := rng.Float64() * total
	for _, o := range options {
		if o.Weight <= 0 {
			continue
		}
		r -= o.Weight
		if r <= 0 {
			return o.Option, true
		}
	}
	for _, o := range options {
		if o.Weight > 0 {
			return o.Option, true
		}
	}
	return zero, false
}
