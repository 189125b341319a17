// Package metrics provides Prometheus metrics for ingestion and cache reads.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Prometheus implements ports.Metrics on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	ingestsTotal      *prometheus.CounterVec
	ingestedBytes     *prometheus.CounterVec
	cacheReadsTotal   *prometheus.CounterVec
	memoryDelta       prometheus.Histogram
	operationDuration *prometheus.HistogramVec
}

// New registers the intake collectors on a fresh registry.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		ingestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_ingests_total",
				Help: "Total number of ingestion attempts",
			},
			[]string{"source", "result"},
		),
		ingestedBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_ingested_bytes_total",
				Help: "Total bytes ingested successfully",
			},
			[]string{"source"},
		),
		cacheReadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_cache_reads_total",
				Help: "Total number of reads of cached copies",
			},
			[]string{"result"},
		),
		memoryDelta: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_batch_item_memory_delta_bytes",
				Help:    "Heap growth measured around each batch item",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intake_operation_duration_seconds",
				Help:    "Duration of traced operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
	}
}

// Registry returns the registry the collectors live in.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveIngest records one ingestion attempt.
func (p *Prometheus) ObserveIngest(source domain.Source, size int64, err error) {
	p.ingestsTotal.WithLabelValues(string(source), domain.Kind(err)).Inc()
	if err == nil && size > 0 {
		p.ingestedBytes.WithLabelValues(string(source)).Add(float64(size))
	}
}

// ObserveCacheRead records one read of a cached copy.
func (p *Prometheus) ObserveCacheRead(err error) {
	p.cacheReadsTotal.WithLabelValues(domain.Kind(err)).Inc()
}

// ObserveMemoryDelta records the heap growth of one batch item.
// Negative deltas are recorded as zero.
func (p *Prometheus) ObserveMemoryDelta(delta int64) {
	p.memoryDelta.Observe(float64(max(delta, 0)))
}

// ObserveOperation records the duration of a finished span.
func (p *Prometheus) ObserveOperation(name string, failed bool, d time.Duration) {
	status := "ok"
	if failed {
		status = "error"
	}
	p.operationDuration.WithLabelValues(name, status).Observe(d.Seconds())
}

// WriteTextfile writes the current metrics in the text exposition format to path,
// as consumed by the node exporter textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to write metrics file"), "path", path))
	}
	return nil
}
