package markov

import "iter"

// Sequences returns an iterator that yields n freshly generated sequences,
// one per pull. After n yields it is exhausted; producing more requires a
// new call. Breaking out of the range loop stops generation early, and no
// sequence is generated without being asked for.
func (c *Chain[T]) Sequences(n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for range n {
			if !yield(c.Generate()) {
				return
			}
		}
	}
}

// Endless returns an iterator that yields generated sequences without
// bound. The consumer ends it by breaking out of the range loop. The chain
// must not be fed while iteration is in progress.
func (c *Chain[T]) Endless() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for yield(c.Generate()) {
		}
	}
}
