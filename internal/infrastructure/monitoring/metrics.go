package monitoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes
const (
	OutcomeComputed = "computed"
	OutcomeCopied   = "copied"
	OutcomeFailed   = "failed"
)

// File outcomes
const (
	FileProcessed = "processed"
	FileSkipped   = "skipped"
	FileFailed    = "failed"
)

// Metrics holds all Prometheus metrics for a run
type Metrics struct {
	registry *prometheus.Registry

	// Row metrics
	RowsTotal   *prometheus.CounterVec
	RowDuration *prometheus.HistogramVec

	// Fixture metrics
	FilesTotal *prometheus.CounterVec

	// Quadrature metrics
	Diagnostics *prometheus.CounterVec

	// Run metrics
	RunDuration prometheus.Gauge
	startTime   time.Time

	// Snapshot for the JSON report
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current counter values for the run report
type Snapshot struct {
	Rows        map[string]int64 `json:"rows"`
	Files       map[string]int64 `json:"files"`
	Diagnostics int64            `json:"diagnostics"`
}

// NewMetrics creates a metrics collector backed by its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "specval_rows_total",
				Help: "Fixture rows processed, by outcome",
			},
			[]string{"fixture", "outcome"},
		),
		RowDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "specval_row_duration_seconds",
				Help:    "Time spent evaluating one fixture row",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
			},
			[]string{"fixture"},
		),
		FilesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "specval_files_total",
				Help: "Fixture files seen, by outcome",
			},
			[]string{"outcome"},
		),
		Diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "specval_quadrature_diagnostics_total",
				Help: "Integrals whose error estimate exceeded the diagnostic threshold",
			},
			[]string{"function"},
		),
		RunDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "specval_run_duration_seconds",
				Help: "Wall time of the run",
			},
		),
		snapshot: Snapshot{
			Rows:  make(map[string]int64),
			Files: make(map[string]int64),
		},
	}
}

// Registry exposes the private registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRow records one evaluated or copied row
func (m *Metrics) RecordRow(fixture, outcome string, duration time.Duration) {
	m.RowsTotal.WithLabelValues(fixture, outcome).Inc()
	if outcome != OutcomeCopied {
		m.RowDuration.WithLabelValues(fixture).Observe(duration.Seconds())
	}

	m.mu.Lock()
	m.snapshot.Rows[outcome]++
	m.mu.Unlock()
}

// RecordFile records the outcome of one fixture file
func (m *Metrics) RecordFile(outcome string) {
	m.FilesTotal.WithLabelValues(outcome).Inc()

	m.mu.Lock()
	m.snapshot.Files[outcome]++
	m.mu.Unlock()
}

// RecordDiagnostic records a quadrature diagnostic
func (m *Metrics) RecordDiagnostic(function string) {
	m.Diagnostics.WithLabelValues(function).Inc()

	m.mu.Lock()
	m.snapshot.Diagnostics++
	m.mu.Unlock()
}

// Finish stamps the run duration
func (m *Metrics) Finish() time.Duration {
	d := time.Since(m.startTime)
	m.RunDuration.Set(d.Seconds())
	return d
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := Snapshot{
		Rows:        make(map[string]int64, len(m.snapshot.Rows)),
		Files:       make(map[string]int64, len(m.snapshot.Files)),
		Diagnostics: m.snapshot.Diagnostics,
	}
	for k, v := range m.snapshot.Rows {
		out.Rows[k] = v
	}
	for k, v := range m.snapshot.Files {
		out.Files[k] = v
	}
	return out
}

// WriteTextfile writes every metric in the textfile collector format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
