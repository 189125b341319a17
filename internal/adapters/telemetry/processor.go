package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DurationObserver receives the duration of every finished span.
type DurationObserver interface {
	ObserveOperation(name string, failed bool, d time.Duration)
}

// DurationProcessor is a span processor that reports span durations to an observer.
type DurationProcessor struct {
	observer DurationObserver
}

var _ sdktrace.SpanProcessor = (*DurationProcessor)(nil)

// NewDurationProcessor creates a processor feeding observer.
func NewDurationProcessor(observer DurationObserver) *DurationProcessor {
	return &DurationProcessor{observer: observer}
}

// OnStart does nothing.
func (p *DurationProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd reports the span's duration and status.
func (p *DurationProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	p.observer.ObserveOperation(s.Name(), s.Status().Code == codes.Error, s.EndTime().Sub(s.StartTime()))
}

// Shutdown does nothing.
func (p *DurationProcessor) Shutdown(_ context.Context) error { return nil }

// ForceFlush does nothing.
func (p *DurationProcessor) ForceFlush(_ context.Context) error { return nil }
