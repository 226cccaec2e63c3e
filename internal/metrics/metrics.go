// Package metrics provides Prometheus metrics for the results workflow and the HTTP layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "conference_hall"

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Results metrics
	ProposalsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "results",
			Name:      "proposals_published_total",
			Help:      "Total number of proposals published by deliberation outcome",
		},
		[]string{"outcome"},
	)

	// Notification metrics
	NotificationsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "enqueued_total",
			Help:      "Total number of notification emails enqueued by template and result",
		},
		[]string{"template", "result"},
	)

	NotificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "delivered_total",
			Help:      "Total number of notification delivery attempts by source and result",
		},
		[]string{"source", "result"},
	)

	NotificationDeliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "delivery_duration_seconds",
			Help:      "Time spent handing a notification to the mailer",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"source"},
	)
)

// ObservePublished records proposals published for an outcome.
func ObservePublished(outcome string, count int) {
	if count > 0 {
		ProposalsPublished.WithLabelValues(outcome).Add(float64(count))
	}
}

// ObserveEnqueued records the result of a notification enqueue.
func ObserveEnqueued(template string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	NotificationsEnqueued.WithLabelValues(template, result).Inc()
}

// ObserveDelivery records a delivery attempt from a queue worker.
func ObserveDelivery(source string, started time.Time, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	NotificationsDelivered.WithLabelValues(source, result).Inc()
	NotificationDeliveryDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}
