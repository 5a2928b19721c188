package rollup

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/rollup/errors"
	"github.com/kbukum/rollup/logger"
	"github.com/kbukum/rollup/observability"
	"github.com/kbukum/rollup/pipeline"
	"github.com/kbukum/rollup/stats"
)

// Run executes the full aggregation pipeline over the given line stream and
// returns the final per-key table.
//
// Lines are batched (BatchSize per unit of work, final short batch
// included), batches are aggregated by Workers concurrent workers, and the
// partial tables are merged by a parallel pairwise tree reduction. The
// stream is read by exactly one goroutine, each batch is owned exclusively
// by the worker aggregating it, and every worker is joined before Run
// returns.
//
// An empty stream yields an empty, non-nil table. On any stream or worker
// failure Run returns (nil, *errors.AppError) — never a partial table
// alongside an error.
func Run(ctx context.Context, lines *pipeline.Pipeline[[]byte], cfg Config) (stats.Table, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := logger.WithComponent("rollup").WithFields(logger.Fields(logger.FieldRunID, runID))
	m := getMetrics()
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "rollup.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.Int("batch.size", cfg.BatchSize),
		attribute.Int("workers", cfg.Workers),
	)

	log.Debug("run starting", logger.Fields(
		"batch_size", cfg.BatchSize,
		"workers", cfg.Workers,
		"delimiter", cfg.Delimiter,
	))

	tables, err := collectPartials(ctx, lines, cfg, m)
	if err != nil {
		return nil, failRun(ctx, log, m, start, "aggregate", err)
	}

	rounds := mergeRounds(len(tables))
	final, ok, err := pipeline.TreeReduce(ctx, tables, stats.MergeTables)
	if err != nil {
		return nil, failRun(ctx, log, m, start, "merge", err)
	}
	if !ok {
		final = make(stats.Table)
	}

	elapsed := time.Since(start)
	m.recordRun(ctx, "ok", elapsed, int64(rounds))
	log.Info("run complete", logger.Fields(
		logger.FieldBatches, len(tables),
		logger.FieldKeys, len(final),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return final, nil
}

// collectPartials runs the aggregation phase: batch the stream, fan the
// batches out to the worker pool, and gather the partial tables in whatever
// order they complete.
func collectPartials(ctx context.Context, lines *pipeline.Pipeline[[]byte], cfg Config, m *metrics) ([]stats.Table, error) {
	delim := cfg.delim()
	batched := pipeline.Batch(lines, cfg.BatchSize)
	partials := pipeline.Parallel(batched, cfg.Workers, func(ctx context.Context, batch [][]byte) (table stats.Table, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.WorkerFailed("aggregate", fmt.Errorf("panic: %v", r))
			}
		}()
		table, skipped := aggregate(batch, delim)
		m.recordBatch(ctx, int64(len(batch)), skipped)
		return table, nil
	})
	return pipeline.Collect(ctx, partials)
}

// failRun wraps err, records the failed run, and returns the wrapped error.
func failRun(ctx context.Context, log *logger.Logger, m *metrics, start time.Time, phase string, err error) error {
	wrapped := wrapRunError(err)
	observability.SetSpanError(ctx, wrapped)
	m.recordRun(ctx, "error", time.Since(start), 0)
	log.Error("run failed", logger.ErrorFields(phase, wrapped))
	return wrapped
}

// wrapRunError maps a pipeline failure to the module's error type. Errors
// already carrying a code pass through; context errors become cancellation
// or timeout; anything else surfaced mid-run came from the input stream.
func wrapRunError(err error) error {
	var app *errors.AppError
	if stderrors.As(err, &app) {
		return app
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Timeout("rollup", err)
	case stderrors.Is(err, context.Canceled):
		return errors.Canceled("rollup", err)
	default:
		return errors.StreamRead(err)
	}
}

// mergeRounds returns the number of tree-reduction rounds for n partials.
func mergeRounds(n int) int {
	rounds := 0
	for n > 1 {
		rounds++
		n = n/2 + n%2
	}
	return rounds
}
