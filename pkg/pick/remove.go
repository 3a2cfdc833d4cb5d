package pick

import "slices"

// removalRange is the factor by which removal indices oversample the population
// size. Each index is reduced modulo the shrinking working length.
const removalRange = 10

// removeItems copies population and removes, for each idx in order, the element at
// idx mod the current length of the copy. Indices must be non-negative.
func removeItems[T any](population []T, indices []int) []T {
	work := clone(population)
	for _, idx := range indices {
		if len(work) == 0 {
			break
		}
		i := idx % len(work)
		work = slices.Delete(work, i, i+1)
	}
	return work
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
