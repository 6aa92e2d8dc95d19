package bench

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metrics records every timed search of a benchmark run on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	searchDuration *prometheus.HistogramVec
	searchesTotal  *prometheus.CounterVec
	bytesScanned   *prometheus.CounterVec
}

// NewMetrics creates a Metrics with its own registry, so concurrent runs and tests
// never collide on the global default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kmpcat_search_duration_seconds",
				Help:    "Time spent in a single search call",
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
			},
			[]string{"mode", "size"},
		),
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kmpcat_searches_total",
				Help: "Number of timed search calls",
			},
			[]string{"mode"},
		),
		bytesScanned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kmpcat_bytes_scanned_total",
				Help: "Total text bytes scanned by timed search calls",
			},
			[]string{"mode"},
		),
	}

	m.registry.MustRegister(m.searchDuration, m.searchesTotal, m.bytesScanned)
	return m
}

// Registry returns the registry holding the benchmark metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Gather returns the current metric families.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// WriteText writes the gathered metrics in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observe(mode string, size, textLen int, d time.Duration) {
	m.searchDuration.WithLabelValues(mode, strconv.Itoa(size)).Observe(d.Seconds())
	m.searchesTotal.WithLabelValues(mode).Inc()
	m.bytesScanned.WithLabelValues(mode).Add(float64(textLen))
}
