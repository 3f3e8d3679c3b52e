// Package metrics defines Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "draftforge", Name: "http_requests_total", Help: "Number of HTTP requests by method and status class."},
		[]string{"method", "status"},
	)
	GenerationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "draftforge", Name: "generation_attempts_total", Help: "Number of AI generation attempts by provider and outcome."},
		[]string{"provider", "outcome"},
	)
	ExportsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "draftforge", Name: "exports_built_total", Help: "Number of document exports by type and outcome."},
		[]string{"document_type", "outcome"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "draftforge", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by endpoint."},
		[]string{"endpoint"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(GenerationAttempts)
	reg.MustRegister(ExportsBuilt)
	reg.MustRegister(RateLimitRejected)
}
