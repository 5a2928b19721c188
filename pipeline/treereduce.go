package pipeline

import (
	"context"
	"sync"
)

// TreeReduce combines items pairwise in parallel rounds until one remains:
// each round merges adjacent pairs concurrently, an odd leftover passes
// through to the next round unchanged, and all of a round's goroutines are
// joined before the next round starts.
//
// merge must be associative and commutative, and may mutate and return its
// first argument; each item is handed to at most one merge call per round.
// The reduction runs log2(len(items)) rounds and len(items)-1 merges total.
//
// Returns (zero, false, nil) for an empty input. Cancellation is checked
// between rounds; merges already in flight run to completion first.
func TreeReduce[T any](ctx context.Context, items []T, merge func(a, b T) T) (T, bool, error) {
	for len(items) > 1 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, err
		}

		pairs := len(items) / 2
		next := make([]T, pairs, pairs+1)

		var wg sync.WaitGroup
		for i := 0; i < pairs; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				next[i] = merge(items[2*i], items[2*i+1])
			}(i)
		}
		wg.Wait()

		if len(items)%2 == 1 {
			next = append(next, items[len(items)-1])
		}
		items = next
	}

	if len(items) == 0 {
		var zero T
		return zero, false, nil
	}
	return items[0], true, nil
}
