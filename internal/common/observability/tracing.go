package observability

import (
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// NewSpanProcessors builds the span pipeline for exporter. ExporterNone
// returns no processors; spans are still created for log correlation.
func NewSpanProcessors(exporter string, w io.Writer) ([]sdktrace.SpanProcessor, error) {
	switch exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("stdout span exporter: %w", err)
		}
		return []sdktrace.SpanProcessor{sdktrace.NewBatchSpanProcessor(exp)}, nil
	default:
		return nil, fmt.Errorf("unknown span exporter %q", exporter)
	}
}
