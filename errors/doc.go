// Package errors provides the module's unified error type: a structured
// error with a machine-readable code, retryable detection, optional detail
// fields, and a wrapped cause that participates in errors.Is/As chains.
//
// Pipeline-level failures (stream reads, worker faults, bad configuration)
// are always wrapped in an *AppError before leaving the rollup driver, so
// callers can branch on Code instead of matching message strings.
package errors
