package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Basket
	BasketItemsAdded   prometheus.Counter
	BasketItemsRemoved prometheus.Counter

	// Checkout funnel
	CheckoutsAccepted prometheus.Counter
	CheckoutsRejected prometheus.Counter
	OrderValue        prometheus.Histogram
	OrderItemCount    prometheus.Histogram

	// Order lifecycle
	OrdersCanceled     *prometheus.CounterVec
	StateTransitions   *prometheus.CounterVec
	InventoryRollbacks prometheus.Counter

	// Notifications
	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics on reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate
// registration panics.
func NewBusinessMetrics(reg prometheus.Registerer, namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "vanir"
	}

	subsystem := "business"
	factory := promauto.With(reg)

	m := &BusinessMetrics{
		BasketItemsAdded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "basket_items_added_total",
				Help:      "Total basket lines added or replaced",
			},
		),
		BasketItemsRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "basket_items_removed_total",
				Help:      "Total basket lines removed",
			},
		),
		CheckoutsAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkouts_accepted_total",
				Help:      "Total checkouts that reserved stock and placed orders",
			},
		),
		CheckoutsRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkouts_rejected_total",
				Help:      "Total checkouts rejected for insufficient stock",
			},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Accepted order totals including shipping",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Distinct lines per accepted order",
				Buckets:   prometheus.LinearBuckets(1, 2, 10),
			},
		),
		OrdersCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_canceled_total",
				Help:      "Total seller orders canceled",
			},
			[]string{"actor"}, // actor: buyer, partner
		),
		StateTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_state_transitions_total",
				Help:      "Total seller order state transitions applied by partners",
			},
			[]string{"to_state"},
		),
		InventoryRollbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inventory_rollbacks_total",
				Help:      "Total reservation rollbacks returning stock to offers",
			},
		),
		NotificationsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notifications_sent_total",
				Help:      "Total notifications handed to the sink",
			},
			[]string{"kind"}, // kind: order_placed, order_confirmation, order_canceled, order_updated
		),
		NotificationsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notifications_failed_total",
				Help:      "Total notifications the sink rejected",
			},
			[]string{"kind"},
		),
	}

	return m
}
