package pipeline

import (
	"context"
	"sync"
)

// Parallel applies fn to each value concurrently with up to n workers.
// Completion order is NOT preserved; results surface as workers finish.
//
// The producing goroutine pulls from the source alone, so the source is
// never read concurrently. The first fn error cancels the stage and is the
// only error surfaced; the output channel is closed once every worker has
// returned, so a consumer draining it observes all completed work joined.
func Parallel[I, O any](p *Pipeline[I], n int, fn func(context.Context, I) (O, error)) *Pipeline[O] {
	if n <= 0 {
		n = 1
	}
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			source := p.create(ctx)
			workerCtx, cancel := context.WithCancel(ctx)
			out := make(chan result[O], n)
			in := make(chan I, n)

			var wg sync.WaitGroup

			// Producer: single reader of the source, feeding the work queue.
			go func() {
				defer close(in)
				for {
					val, ok, err := source.Next(workerCtx)
					if err != nil {
						select {
						case out <- result[O]{err: err}:
						case <-workerCtx.Done():
						}
						return
					}
					if !ok {
						return
					}
					select {
					case in <- val:
					case <-workerCtx.Done():
						return
					}
				}
			}()

			// Workers: each unit of work is owned by exactly one worker.
			for w := 0; w < n; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for val := range in {
						o, err := fn(workerCtx, val)
						if err != nil {
							select {
							case out <- result[O]{err: err}:
							case <-workerCtx.Done():
							}
							cancel()
							return
						}
						select {
						case out <- result[O]{val: o, ok: true}:
						case <-workerCtx.Done():
							return
						}
					}
				}()
			}

			go func() {
				wg.Wait()
				close(out)
			}()

			return &channelIter[O]{
				ch: out,
				closer: func() error {
					// Cancel outstanding work and join every worker before
					// releasing the source, so no goroutine outlives the stage.
					cancel()
					wg.Wait()
					return source.Close()
				},
			}
		},
	}
}
