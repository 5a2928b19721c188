// Package stats provides the mergeable per-key summary that the rollup
// pipeline aggregates: minimum, maximum, running sum, and observation count,
// with the arithmetic mean derived on demand.
//
// Merge is associative and commutative, which is what allows partial results
// produced by independent workers to be combined in any order (and in any
// pairing) without changing the final answer.
//
// A Table maps keys to their accumulators. Keys are opaque byte sequences
// stored as Go strings; they are compared byte-wise and never decoded or
// validated, so any key encoding round-trips intact.
package stats
