package rollup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/rollup/logger"
	"github.com/kbukum/rollup/observability"
)

const meterName = "github.com/kbukum/rollup"

// metrics holds the pipeline's OpenTelemetry instruments. Instruments come
// from the global meter, so they are no-ops unless a provider is installed.
type metrics struct {
	runTotal    metric.Int64Counter
	runDuration metric.Float64Histogram
	batchTotal  metric.Int64Counter
	lineTotal   metric.Int64Counter
	lineSkipped metric.Int64Counter
	mergeRounds metric.Int64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	runTotal, err := meter.Int64Counter("rollup.run.total",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollup.run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("rollup.run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollup.run.duration histogram: %w", err)
	}

	batchTotal, err := meter.Int64Counter("rollup.batch.total",
		metric.WithDescription("Total number of batches aggregated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollup.batch.total counter: %w", err)
	}

	lineTotal, err := meter.Int64Counter("rollup.line.total",
		metric.WithDescription("Total number of lines read"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollup.line.total counter: %w", err)
	}

	lineSkipped, err := meter.Int64Counter("rollup.line.skipped",
		metric.WithDescription("Lines dropped as malformed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollup.line.skipped counter: %w", err)
	}

	mergeRounds, err := meter.Int64Histogram("rollup.merge.rounds",
		metric.WithDescription("Tree-reduction rounds per run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollup.merge.rounds histogram: %w", err)
	}

	return &metrics{
		runTotal:    runTotal,
		runDuration: runDuration,
		batchTotal:  batchTotal,
		lineTotal:   lineTotal,
		lineSkipped: lineSkipped,
		mergeRounds: mergeRounds,
	}, nil
}

var getMetrics = sync.OnceValue(func() *metrics {
	m, err := newMetrics(observability.Meter(meterName))
	if err != nil {
		logger.Warn("metrics disabled", logger.ErrorFields("init_metrics", err))
		return nil
	}
	return m
})

func (m *metrics) recordBatch(ctx context.Context, lines, skipped int64) {
	if m == nil {
		return
	}
	m.batchTotal.Add(ctx, 1)
	m.lineTotal.Add(ctx, lines)
	m.lineSkipped.Add(ctx, skipped)
}

func (m *metrics) recordRun(ctx context.Context, status string, d time.Duration, rounds int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.runTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, d.Seconds(), attrs)
	m.mergeRounds.Record(ctx, rounds)
}
