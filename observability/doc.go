// Package observability bootstraps OpenTelemetry metrics and traces for
// binaries embedding the rollup pipeline. Libraries in this module take
// their instruments and tracers from the global otel API, so everything
// degrades to no-ops when no provider has been installed.
package observability
