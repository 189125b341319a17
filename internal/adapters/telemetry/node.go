package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/intake/internal/adapters/metrics"
	"go.trai.ch/intake/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{metrics.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			m, err := graft.Dep[*metrics.Prometheus](ctx)
			if err != nil {
				return nil, err
			}
			provider := sdktrace.NewTracerProvider(
				sdktrace.WithSpanProcessor(NewDurationProcessor(m)),
			)
			return NewOTelTracer(provider, "intake"), nil
		},
	})
}
