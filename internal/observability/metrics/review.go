package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReviewOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_operations_total",
			Help: "Total number of review operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	ReviewOperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_operation_duration_seconds",
			Help:    "Duration of review service operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	FeedConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "review_feed_connections_active",
			Help: "Number of open review feed websocket connections",
		},
	)

	FeedEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_feed_events_total",
			Help: "Total number of review feed events by type",
		},
		[]string{"type"},
	)

	FeedClientsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "review_feed_clients_dropped_total",
			Help: "Total number of feed clients dropped for falling behind",
		},
	)
)
