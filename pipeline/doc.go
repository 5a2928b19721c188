// Package pipeline provides the pull-based concurrency substrate for the
// rollup aggregation: lazy iterators, batching with ownership hand-off, a
// worker-pool stage, and a parallel pairwise tree reduction.
//
// Pipelines are lazy — no work happens until values are pulled via Collect
// or ForEach. Each stage pulls from the previous stage on demand, providing
// natural backpressure without explicit flow control.
//
// # Stages
//
//   - Batch: group consecutive values into fixed-size slices; each emitted
//     slice is freshly allocated, so the consumer owns it exclusively
//   - Parallel: apply a function with a pool of n workers; completion order
//     is NOT preserved
//   - TreeReduce: combine a slice of values pairwise in parallel rounds
//     until one remains; requires an associative, commutative merge
//
// # Usage
//
//	batched := pipeline.Batch(lines, 100_000)
//	partials := pipeline.Parallel(batched, workers, aggregate)
//	tables, err := pipeline.Collect(ctx, partials)
package pipeline
