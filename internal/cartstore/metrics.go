package cartstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for cart_actions_total.
const (
	OutcomeAdded       = "added"
	OutcomeIncremented = "incremented"
	OutcomeDecremented = "decremented"
	OutcomeRemoved     = "removed"
	OutcomeNoop        = "noop"
)

var (
	cartActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_actions_total",
			Help: "Cart actions dispatched, by action and resulting change",
		},
		[]string{"action", "outcome"},
	)

	cartLineItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_line_items",
			Help: "Distinct products currently in the cart",
		},
	)

	cartTotalItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_total_items",
			Help: "Units currently in the cart",
		},
	)
)
