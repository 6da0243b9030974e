package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NormalizationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_normalization_total",
			Help: "Model replies normalized, by the layer that produced the result",
		},
		[]string{"layer"},
	)
	SchemaIssuesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_schema_issues_total",
			Help: "Normalized results missing expected keys or carrying out-of-range values",
		},
	)
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Generation requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Generation request duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)
	ProfileRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_requests_total",
			Help: "PDF profile requests by terminal outcome",
		},
		[]string{"outcome"},
	)
)
