package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QA-API Metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Upstream calls by client (flowise, ollama, mermaid, gstore)
	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "upstream_calls_total",
			Help:      "Total calls made to external collaborators",
		},
		[]string{"client", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "upstream_duration_seconds",
			Help:      "External collaborator call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"client"},
	)

	IntentDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "intent_decisions_total",
			Help:      "Routing decisions by intent and source",
		},
		[]string{"intent_id", "source"},
	)

	DiagramRewritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "diagram_rewrites_total",
			Help:      "Answers processed by the diagram service",
		},
		[]string{"applied"},
	)

	EntitiesExtractedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "entities_extracted_total",
			Help:      "Entities persisted from annotated answers",
		},
	)

	EntityQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "qa_api",
			Name:      "entity_queries_total",
			Help:      "Entity graph lookups by cache outcome",
		},
		[]string{"cache"},
	)
)

// RecordRequest records an HTTP request's count and duration.
func RecordRequest(method, endpoint, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordUpstream records one call to an external collaborator.
func RecordUpstream(client, status string, duration time.Duration) {
	UpstreamCallsTotal.WithLabelValues(client, status).Inc()
	UpstreamDuration.WithLabelValues(client).Observe(duration.Seconds())
}

// RecordIntent counts a routing decision.
func RecordIntent(intentID int, source string) {
	IntentDecisionsTotal.WithLabelValues(strconv.Itoa(intentID), source).Inc()
}

// RecordDiagramRewrite counts a diagram rewrite attempt.
func RecordDiagramRewrite(applied bool) {
	if applied {
		DiagramRewritesTotal.WithLabelValues("true").Inc()
		return
	}
	DiagramRewritesTotal.WithLabelValues("false").Inc()
}

// RecordEntityQuery counts an entity lookup.
func RecordEntityQuery(cached bool) {
	if cached {
		EntityQueriesTotal.WithLabelValues("hit").Inc()
		return
	}
	EntityQueriesTotal.WithLabelValues("miss").Inc()
}


// RecordEntitiesExtracted adds newly persisted entities.
func RecordEntitiesExtracted(count int) {
	if count > 0 {
		EntitiesExtractedTotal.Add(float64(count))
	}
}
