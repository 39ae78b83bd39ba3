package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	transactions         *prometheus.CounterVec
	computeUnitsConsumed prometheus.Histogram
	accountsCommitted    prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "transactions",
			Help:      "number of processed transactions by result",
		}, []string{"result"}),
		computeUnitsConsumed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "compute_units_consumed",
			Help:      "compute units consumed per transaction",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 12),
		}),
		accountsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "accounts_committed",
			Help:      "number of accounts written back to the store",
		}),
	}

	if registerer == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.transactions, m.computeUnitsConsumed, m.accountsCommitted} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) recordTransaction(err error, consumed uint64) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	m.transactions.WithLabelValues(result).Inc()
	m.computeUnitsConsumed.Observe(float64(consumed))
}
