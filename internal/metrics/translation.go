package metrics

import "github.com/prometheus/client_golang/prometheus"

// Translation pipeline Prometheus metrics.
var (
	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vocabd",
			Name:      "translation_requests_total",
			Help:      "Total number of translation gateway requests",
		},
		[]string{"provider", "model", "status"},
	)

	TranslationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vocabd",
			Name:      "translation_request_duration_seconds",
			Help:      "Translation gateway request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	TranslationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vocabd",
			Name:      "translation_errors_total",
			Help:      "Total translation gateway errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	LookupWordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vocabd",
			Name:      "lookup_words_total",
			Help:      "Distinct words per lookup by resolution outcome",
		},
		[]string{"result"}, // "cache_hit" / "ai_resolved" / "unresolved"
	)
)

var translationMetricsRegistered bool

// RegisterTranslationMetrics registers Prometheus translation metrics.
// Must be called once from main.
func RegisterTranslationMetrics() {
	if translationMetricsRegistered {
		return
	}
	translationMetricsRegistered = true

	prometheus.MustRegister(
		TranslationRequestsTotal,
		TranslationRequestDuration,
		TranslationErrorsTotal,
		LookupWordsTotal,
	)
}
