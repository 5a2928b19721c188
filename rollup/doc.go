// Package rollup computes per-key aggregate statistics (min, max, mean)
// over a delimited line stream, in parallel, with a result identical to a
// sequential scan.
//
// The pipeline has two concurrent phases. Aggregation: lines are grouped
// into fixed-size batches, each batch is handed off to one of a pool of
// workers, and each worker folds its batch into a private stats.Table.
// Merge: the partial tables are combined by a parallel pairwise tree
// reduction. Because the per-key merge is associative and commutative, the
// result does not depend on batch boundaries, worker scheduling, or merge
// pairing.
//
// Parsing is lenient: a line with no delimiter, or whose value segment does
// not parse as a finite float, contributes nothing and is counted as
// skipped. Stream and worker failures abort the whole run; Run never
// returns a table alongside an error.
package rollup
