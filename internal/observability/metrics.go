// Package observability holds Prometheus collectors for domain events.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwapsCompleted counts swaps that reached the completed state.
	SwapsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_swaps_completed_total",
		Help: "Total number of swaps transitioned to completed",
	})

	// CoinsAwarded counts coins credited by reason.
	CoinsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_coins_awarded_total",
		Help: "Total coins credited to users by reason",
	}, []string{"reason"})

	// RatingsSubmitted counts accepted post-swap ratings.
	RatingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_ratings_submitted_total",
		Help: "Total number of ratings recorded",
	})
)
