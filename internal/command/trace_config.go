package command

import (
	"context"
	"fmt"
	"os"

	"github.com/joeycumines/btagent/internal/config"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// traceConfig holds the resolved tick tracing setup.
type traceConfig struct {
	provider *sdktrace.TracerProvider // nil when tracing is off
	file     *os.File
}

// resolveTraceConfig enables tick tracing when a trace file is configured,
// by flag or by the trace.file option. Spans are written to the file as JSON,
// one span at a time. The caller must call shutdown.
func resolveTraceConfig(flagPath string, cfg *config.Config) (traceConfig, error) {
	var tc traceConfig

	path := flagPath
	if path == "" {
		path = config.DefaultSchema().Resolve(cfg, "trace.file")
	}
	if path == "" {
		return tc, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return tc, fmt.Errorf("failed to open trace file %s: %w", path, err)
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return tc, fmt.Errorf("create trace exporter: %w", err)
	}

	tc.file = f
	tc.provider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return tc, nil
}

// tracerProvider returns the provider to hand to the tree, or nil when
// tracing is off.
func (tc traceConfig) tracerProvider() trace.TracerProvider {
	if tc.provider == nil {
		return nil
	}
	return tc.provider
}

// shutdown flushes pending spans and closes the trace file.
func (tc traceConfig) shutdown(ctx context.Context) error {
	if tc.provider == nil {
		return nil
	}
	err := tc.provider.Shutdown(ctx)
	if cerr := tc.file.Close(); err == nil {
		err = cerr
	}
	return err
}
