// SPDX-License-Identifier: MIT

package transform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName names the tracer and meter.
const instrumentationName = "proxgraph.transform"

// instruments holds the compiler's metric instruments. Creation failures
// leave the instrument nil and are logged once.
type instruments struct {
	once         sync.Once
	copies       metric.Int64Counter
	nullProx     metric.Int64Counter
	passDuration metric.Float64Histogram
}

func (in *instruments) init(meter metric.Meter, logger *slog.Logger) {
	in.once.Do(func() {
		var initErrors []string
		var err error

		in.copies, err = meter.Int64Counter("proxgraph_copies_total",
			metric.WithDescription("Copy variables synthesized by separation"),
		)
		if err != nil {
			initErrors = append(initErrors, "copies: "+err.Error())
		}

		in.nullProx, err = meter.Int64Counter("proxgraph_null_prox_total",
			metric.WithDescription("Constant prox terms added for constraint-only variables"),
		)
		if err != nil {
			initErrors = append(initErrors, "null_prox: "+err.Error())
		}

		in.passDuration, err = meter.Float64Histogram("proxgraph_pass_duration_seconds",
			metric.WithDescription("Time spent in each transform pass"),
			metric.WithUnit("s"),
		)
		if err != nil {
			initErrors = append(initErrors, "pass_duration: "+err.Error())
		}

		if len(initErrors) > 0 {
			logger.Error("failed to initialize transform metrics (observability degraded)",
				slog.Int("failed_count", len(initErrors)),
				slog.Any("errors", initErrors),
			)
		}
	})
}

func (in *instruments) recordPass(ctx context.Context, name string, changes int, d time.Duration) {
	attrs := metric.WithAttributes(attribute.String("pass.name", name))
	if in.passDuration != nil {
		in.passDuration.Record(ctx, d.Seconds(), attrs)
	}
	switch name {
	case PassSeparateObjectiveTerms:
		if in.copies != nil {
			in.copies.Add(ctx, int64(changes))
		}
	case PassAddNullProx:
		if in.nullProx != nil {
			in.nullProx.Add(ctx, int64(changes))
		}
	}
}

func defaultTracer() trace.Tracer { return otel.Tracer(instrumentationName) }

func defaultMeter() metric.Meter { return otel.Meter(instrumentationName) }
