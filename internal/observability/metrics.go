// Package observability exposes Prometheus metrics for cleaning runs.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// RowsProcessed counts rows that passed through a pipeline stage.
	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_rows_processed_total",
			Help: "Total number of rows processed per pipeline stage",
		},
		[]string{"stage"},
	)

	// ChunksProcessed counts completed chunks.
	ChunksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_chunks_processed_total",
			Help: "Total number of chunks processed",
		},
	)

	// ChunkDuration measures how long a chunk takes to transform.
	ChunkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_chunk_duration_seconds",
			Help:    "Chunk transform duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	// Translations counts fallback translation lookups by outcome.
	Translations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_translations_total",
			Help: "Foreign-text fallback lookups",
		},
		[]string{"result"}, // result: skipped, cached, translated, others, error
	)

	// Retries counts failed attempts that were retried, per operation.
	Retries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_retries_total",
			Help: "Failed attempts retried with backoff",
		},
		[]string{"operation"},
	)

	// PeriodAdmissions counts registry admission decisions.
	PeriodAdmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_period_admissions_total",
			Help: "Period registry admission decisions",
		},
		[]string{"source", "result"},
	)

	// RunDuration measures complete pipeline runs.
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_run_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)
