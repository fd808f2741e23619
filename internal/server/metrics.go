package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// translationLatency tracks end-to-end translation latency in seconds.
	translationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translation_latency_seconds",
			Help:    "End-to-end translation request latency in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "cache_status"},
	)

	// translationsTotal counts translation requests by outcome.
	translationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translations_total",
			Help: "Total number of translation requests.",
		},
		[]string{"service", "status"}, // status: "ok" or "error"
	)

	// cacheHitsTotal counts translation memory hits.
	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of translation memory hits.",
		},
	)
)
