package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReputationComputations counts composite reputation computations.
	ReputationComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogpulse_reputation_computations_total",
		Help: "The total number of composite reputation computations",
	})

	// PostsGated counts gate decisions by resulting status.
	PostsGated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogpulse_posts_gated_total",
		Help: "The total number of gated posts by resulting status",
	}, []string{"status"})

	// FeedBuilds counts recommended-feed assembly calls.
	FeedBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogpulse_feed_builds_total",
		Help: "The total number of recommended feed builds",
	})

	// TrendingRebuilds counts trending index rebuilds by period.
	TrendingRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogpulse_trending_rebuilds_total",
		Help: "The total number of trending index rebuilds",
	}, []string{"period"})
)
