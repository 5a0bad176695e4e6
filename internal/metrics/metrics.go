// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the server updates.
type Metrics struct {
	RPCRequests            *prometheus.CounterVec
	RPCDuration            *prometheus.HistogramVec
	BalanceComputations    prometheus.Counter
	SettlementInstructions prometheus.Histogram
	SettlementsRecorded    prometheus.Counter
	ExpensesAdded          *prometheus.CounterVec
	UnknownParticipants    prometheus.Counter
}

// New creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitbetter",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "splitbetter",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		BalanceComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "splitbetter",
			Name:      "balance_computations_total",
			Help:      "Net balance and settlement computations.",
		}),
		SettlementInstructions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "splitbetter",
			Name:      "settlement_instructions",
			Help:      "Number of settlement instructions per computation.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		SettlementsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "splitbetter",
			Name:      "settlements_recorded_total",
			Help:      "Settlement transfers written as expenses.",
		}),
		ExpensesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitbetter",
			Name:      "expenses_added_total",
			Help:      "Expenses added by split type.",
		}, []string{"split_type"}),
		UnknownParticipants: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "splitbetter",
			Name:      "unknown_participants_total",
			Help:      "Expense payers or participants found outside their split during balance computation.",
		}),
	}

	reg.MustRegister(
		m.RPCRequests,
		m.RPCDuration,
		m.BalanceComputations,
		m.SettlementInstructions,
		m.SettlementsRecorded,
		m.ExpensesAdded,
		m.UnknownParticipants,
	)
	return m
}
