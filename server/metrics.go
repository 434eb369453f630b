package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/part"
)

// Metrics are the Prometheus collectors of one server. Each server owns a
// registry so several can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	Generations        *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	CommandsEmitted    *prometheus.HistogramVec
	DroppedAnnotations *prometheus.CounterVec
}

// NewMetrics registers the drawing metrics on reg. A nil reg gets a fresh
// registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Generations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draft_generations_total",
				Help: "Total number of drawing generations",
			},
			[]string{"kind", "status"},
		),
		GenerationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "draft_generation_duration_seconds",
				Help:    "Time taken to generate and serialize a drawing",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"kind"},
		),
		CommandsEmitted: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "draft_commands_emitted",
				Help:    "Number of drawing commands per generated drawing",
				Buckets: prometheus.ExponentialBuckets(16, 2, 8),
			},
			[]string{"kind"},
		),
		DroppedAnnotations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draft_dropped_annotations_total",
				Help: "Annotation requests dropped for an unknown selector",
			},
			[]string{"kind", "category"},
		),
	}
}

// RecordGeneration records one finished generation.
func (m *Metrics) RecordGeneration(kind part.Kind, status string, commands int, d time.Duration) {
	m.Generations.WithLabelValues(string(kind), status).Inc()
	m.GenerationDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
	if commands > 0 {
		m.CommandsEmitted.WithLabelValues(string(kind)).Observe(float64(commands))
	}
}

// RecordDropped counts skipped annotation requests.
func (m *Metrics) RecordDropped(skipped []*annotate.UnknownAttachmentError) {
	for _, s := range skipped {
		m.DroppedAnnotations.WithLabelValues(string(s.Kind), string(s.Category)).Inc()
	}
}
