package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of created orders.",
	})

	ordersPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "orders",
		Name:      "payments_confirmed_total",
		Help:      "Total number of payment confirmations.",
	})

	ordersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "orders",
		Name:      "delivered_total",
		Help:      "Total number of confirmed deliveries.",
	})

	ordersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "orders",
		Name:      "cancelled_total",
		Help:      "Total number of cancelled orders.",
	})

	stockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "stock",
		Name:      "conflicts_total",
		Help:      "Delivery confirmations rejected for insufficient stock.",
	})

	unitsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "water_sales",
		Subsystem: "stock",
		Name:      "units_delivered_total",
		Help:      "Units removed from stock by confirmed deliveries.",
	}, []string{"product_id"})
)
