package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Total number of order events written to Kafka.",
	}, []string{"type"})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "events",
		Name:      "failed_total",
		Help:      "Total number of order events that could not be written.",
	})
)
