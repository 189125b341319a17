package ports

import "go.trai.ch/intake/internal/core/domain"

// Metrics records ingestion counters.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveIngest records one ingestion attempt of size bytes from source.
	ObserveIngest(source domain.Source, size int64, err error)

	// ObserveCacheRead records one read of a cached copy.
	ObserveCacheRead(err error)

	// ObserveMemoryDelta records the memory growth of one batch item.
	ObserveMemoryDelta(delta int64)
}
