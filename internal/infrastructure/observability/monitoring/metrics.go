// Package monitoring exposes Prometheus metrics for the analytics pipeline.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshesTotal counts profile refresh attempts by outcome.
	RefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redditpulse",
		Name:      "refreshes_total",
		Help:      "Profile refresh attempts, labeled by outcome (success|failure).",
	}, []string{"outcome"})

	// AnalyticsLoads counts analytics snapshot loads by content kind.
	AnalyticsLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redditpulse",
		Name:      "analytics_loads_total",
		Help:      "Analytics snapshot loads, labeled by content kind.",
	}, []string{"kind"})

	// AnalyticsLoadDuration observes end-to-end snapshot load latency.
	AnalyticsLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "redditpulse",
		Name:      "analytics_load_duration_seconds",
		Help:      "End-to-end analytics snapshot load latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	// MatchedContentItems observes how many content items per pass received
	// an engagement match.
	MatchedContentItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "redditpulse",
		Name:      "matched_content_items",
		Help:      "Matched content items per reconciliation pass.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
)
