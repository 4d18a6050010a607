// Package metrics exposes Prometheus metrics for the monitoring pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ppekit"

// Manager holds the pipeline metrics and the registry they live in
type Manager struct {
	registry *prometheus.Registry

	// framesProcessed counts frames run through the pipeline
	framesProcessed prometheus.Counter
	// frameDuration observes per-frame processing time
	frameDuration prometheus.Histogram
	// liveTracks reports the current number of tracked identities
	liveTracks prometheus.Gauge
	// verdicts counts per-frame person verdicts by compliance outcome
	verdicts *prometheus.CounterVec
}

// NewManager creates a metrics manager with its own registry, keeping the
// process free of default Go collectors from other libraries
func NewManager() *Manager {

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Manager{
		registry: registry,
		framesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_processed_total",
			Help:      "Number of video frames processed.",
		}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent detecting, tracking and scoring one frame.",
			Buckets:   prometheus.DefBuckets,
		}),
		liveTracks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_tracks",
			Help:      "Number of identities currently tracked.",
		}),
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "person_verdicts_total",
			Help:      "Per-frame person compliance verdicts.",
		}, []string{"verdict"}),
	}
}

// ObserveFrame records one processed frame and its duration
func (m *Manager) ObserveFrame(d time.Duration) {
	m.framesProcessed.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// SetLiveTracks updates the live track gauge
func (m *Manager) SetLiveTracks(n int) {
	m.liveTracks.Set(float64(n))
}

// RecordVerdict counts one person's compliance verdict for the current frame
func (m *Manager) RecordVerdict(compliant bool) {
	if compliant {
		m.verdicts.WithLabelValues("compliant").Inc()
		return
	}
	m.verdicts.WithLabelValues("non_compliant").Inc()
}

// Handler returns the HTTP handler serving this manager's registry
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
