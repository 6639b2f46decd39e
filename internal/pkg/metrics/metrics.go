// Package metrics declares the Prometheus collectors of the service. They are
// registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cafedelivery"

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders successfully placed.",
	})

	OrderStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Order status changes by previous and new status.",
	},
		[]string{"from", "to"},
	)

	DriverAssignmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "driver_assignments_total",
		Help:      "Driver assignment attempts by mode (manual, auto) and result.",
	},
		[]string{"mode", "result"},
	)

	OutboxMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_messages_total",
		Help:      "Outbox messages processed by the relay, by result (published, failed).",
	},
		[]string{"result"},
	)

	DriverLocationsPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "driver_locations_pruned_total",
		Help:      "Driver location records removed by retention.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
