// Package metrics registers the Prometheus collectors for routing and scheduling.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoutingRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "routing_requests_total",
			Help: "Total number of routing requests",
		},
	)

	RoutingRecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "routing_recommendations_returned",
			Help:    "Number of recommendations returned per routing request",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	ScheduleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_requests_total",
			Help: "Total number of schedule requests by binding constraint kind",
		},
		[]string{"constraint"},
	)

	SubmissionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_processed_total",
			Help: "Total number of submission state transitions",
		},
		[]string{"state"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_duration_seconds",
			Help: "Duration of submission processing in seconds",
		},
		[]string{"stage"},
	)
)

// Constraint kinds reported on ScheduleRequests.
const (
	ConstraintBusinessHours = "business_hours"
	ConstraintClient        = "client"
)
