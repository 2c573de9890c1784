package metrics

import "github.com/prometheus/client_golang/prometheus"

// Translation pipeline Prometheus metrics.
var (
	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dishq",
			Name:      "translation_requests_total",
			Help:      "Total number of translation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid_input", "rate_limited", "moderation_rejected", "configuration", "upstream"
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dishq",
			Name:      "upstream_requests_total",
			Help:      "Total number of moderation/generation calls",
		},
		[]string{"capability", "model", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dishq",
			Name:      "upstream_request_duration_seconds",
			Help:      "Moderation/generation call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"capability", "model"},
	)

	UpstreamTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dishq",
			Name:      "upstream_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"model", "type"}, // "prompt" / "completion" / "total"
	)

	RateLimitRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dishq",
			Name:      "ratelimit_rejections_total",
			Help:      "Total requests rejected by the server-side rate limiter",
		},
	)
)

var translationMetricsRegistered bool

// RegisterTranslationMetrics registers translation metrics. Must be called once from main.
func RegisterTranslationMetrics() {
	if translationMetricsRegistered {
		return
	}
	prometheus.MustRegister(TranslationRequestsTotal)
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamTokensTotal)
	prometheus.MustRegister(RateLimitRejectionsTotal)
	translationMetricsRegistered = true
}
