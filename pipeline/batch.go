package pipeline

import "context"

// Batch groups consecutive values into slices of exactly size elements,
// emitting one final shorter slice if the source length is not a multiple
// of size. An input whose length is an exact multiple produces no trailing
// partial batch, and an empty source produces no batches at all.
//
// Every emitted slice is freshly allocated and never touched again by this
// stage, so ownership transfers cleanly to whatever consumes it — batches
// can be handed to concurrent workers without aliasing.
//
// A source error aborts the stage immediately; buffered values are dropped,
// since the pipeline's contract is all-or-nothing on stream failure.
func Batch[T any](p *Pipeline[T], size int) *Pipeline[[]T] {
	if size <= 0 {
		size = 1
	}
	return &Pipeline[[]T]{
		create: func(ctx context.Context) Iterator[[]T] {
			return &batchIter[T]{source: p.create(ctx), size: size}
		},
	}
}

type batchIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *batchIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.done {
		return nil, false, nil
	}

	batch := make([]T, 0, it.size)
	for len(batch) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			it.done = true
			return nil, false, err
		}
		if !ok {
			it.done = true
			if len(batch) > 0 {
				return batch, true, nil
			}
			return nil, false, nil
		}
		batch = append(batch, val)
	}
	return batch, true, nil
}

func (it *batchIter[T]) Close() error { return it.source.Close() }
