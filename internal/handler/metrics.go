package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	intakeProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "orders_processed_total",
			Help:      "Total number of intake messages turned into orders",
		},
	)

	intakeFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "orders_failed_total",
			Help:      "Total number of failed intake messages",
		},
	)

	intakeDuplicates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "duplicates_total",
			Help:      "Total number of redelivered intake messages skipped",
		},
	)

	intakeDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "dlq_total",
			Help:      "Total number of intake messages written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	intakeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "processing_duration_seconds",
			Help:      "Histogram of intake message processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	intakeInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "water_sales",
			Subsystem: "intake",
			Name:      "messages_in_progress",
			Help:      "Number of intake messages currently being processed",
		},
	)
)

var requestErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "http",
		Name:      "service_errors_total",
		Help:      "Total number of failed order operations by response status",
	},
	[]string{"status"},
)

func RegisterMetrics() {
	prometheus.MustRegister(
		intakeProcessed,
		intakeFailed,
		intakeDuplicates,
		intakeDLQ,
		commitErrors,
		intakeDuration,
		intakeInProgress,

		requestErrors,
	)
}
