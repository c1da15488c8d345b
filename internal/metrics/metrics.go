// Package metrics defines the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_sessions_created_total",
		Help: "Franchise sessions started.",
	})

	TradesProposed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_trades_proposed_total",
		Help: "Trade proposals by outcome.",
	}, []string{"outcome"})

	SeasonsSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_seasons_simulated_total",
		Help: "Completed season simulations.",
	})

	SigningAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_signing_attempts_total",
		Help: "Free-agent offers by outcome.",
	}, []string{"outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "courtside_http_request_duration_seconds",
		Help:    "API request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	WorkerTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_worker_ticks_total",
		Help: "Background offseason worker passes.",
	})

	SessionsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_sessions_pruned_total",
		Help: "Abandoned sessions removed by the worker.",
	})
)
