package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	documentsTotal      *prometheus.CounterVec
	documentDuration    *prometheus.HistogramVec
	classificationDrops prometheus.Counter
	groundingMismatches prometheus.Counter
	schemaViolations    prometheus.Counter
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bpv",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total verified documents by outcome.",
		},
		[]string{"service", "outcome"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bpv",
			Subsystem: "pipeline",
			Name:      "document_duration_seconds",
			Help:      "Document verification duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "outcome"},
	)
	classificationDrops := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bpv",
			Subsystem: "pipeline",
			Name:      "classification_drops_total",
			Help:      "Dimension candidates dropped because no type cue matched.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	groundingMismatches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bpv",
			Subsystem: "pipeline",
			Name:      "grounding_mismatches_total",
			Help:      "Dimensions penalized because no source line matched.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	schemaViolations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bpv",
			Subsystem: "pipeline",
			Name:      "schema_violations_total",
			Help:      "Documents rejected by the schema gate.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(documentsTotal, documentDuration, classificationDrops, groundingMismatches, schemaViolations)

	return &PipelineMetrics{
		registry:            registry,
		documentsTotal:      documentsTotal,
		documentDuration:    documentDuration,
		classificationDrops: classificationDrops,
		groundingMismatches: groundingMismatches,
		schemaViolations:    schemaViolations,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) FinishDocument(service string, duration time.Duration, outcome string) {
	m.documentsTotal.WithLabelValues(service, outcome).Inc()
	m.documentDuration.WithLabelValues(service, outcome).Observe(duration.Seconds())
}

func (m *PipelineMetrics) AddClassificationDrops(n int) {
	if n > 0 {
		m.classificationDrops.Add(float64(n))
	}
}

func (m *PipelineMetrics) AddGroundingMismatches(n int) {
	if n > 0 {
		m.groundingMismatches.Add(float64(n))
	}
}

func (m *PipelineMetrics) IncSchemaViolation() {
	m.schemaViolations.Inc()
}
