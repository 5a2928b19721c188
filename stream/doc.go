// Package stream adapts raw byte sources into line pipelines.
//
// A line is a byte sequence delimited by '\n' (a trailing '\r' is stripped,
// and a missing final newline is tolerated). Lines are yielded in source
// order, and each yielded slice is a private copy — the scanner's internal
// buffer is never exposed, so lines can be batched and handed to concurrent
// workers safely.
//
// Read failures from the underlying source surface as iterator errors and
// stay sticky: once a source has failed, every subsequent pull fails with
// the same error.
package stream
