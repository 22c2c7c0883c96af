// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "proxsep"

// telemetry bundles the providers handed to the compiler and the shutdown
// hooks that flush them.
type telemetry struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	shutdownFuncs  []func(context.Context) error
}

// shutdown flushes and stops every exporter; errors are joined.
func (t *telemetry) shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdownFuncs {
		errs = append(errs, fn(ctx))
	}
	t.shutdownFuncs = nil

	return errors.Join(errs...)
}

// setupTelemetry returns stdout exporters for the enabled signals and no-op
// providers for the others. Exported data is written to w on shutdown.
func setupTelemetry(w io.Writer, traces, metrics bool) (*telemetry, error) {
	t := &telemetry{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
	}
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	if traces {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		t.tracerProvider = tp
		t.shutdownFuncs = append(t.shutdownFuncs, tp.Shutdown)
	}

	if metrics {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, errors.Join(fmt.Errorf("create metric exporter: %w", err), t.shutdown(context.Background()))
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
			sdkmetric.WithResource(res),
		)
		t.meterProvider = mp
		t.shutdownFuncs = append(t.shutdownFuncs, mp.Shutdown)
	}

	return t, nil
}
