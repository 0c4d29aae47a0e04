// Package metrics defines Prometheus metrics for the mint pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MintsTotal counts mint requests by terminal status
	MintsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biomint_mints_total",
			Help: "Total number of mint requests by terminal status",
		},
		[]string{"status"},
	)

	// MintDuration tracks end-to-end mint pipeline duration
	MintDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biomint_mint_duration_seconds",
			Help:    "Mint pipeline duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"status"},
	)

	// DuplicatesRejected counts advisory duplicate rejections
	DuplicatesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biomint_duplicates_rejected_total",
			Help: "Total number of mint requests rejected as duplicate identities",
		},
	)

	// PinDuration tracks artifact pin latency per artifact label
	PinDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biomint_pin_duration_seconds",
			Help:    "IPFS pin duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"artifact"},
	)

	// TransactionsSent counts mint transactions by outcome
	TransactionsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biomint_transactions_sent_total",
			Help: "Total number of mint transactions sent by outcome",
		},
		[]string{"status"},
	)

	// GasUsed tracks gas consumed by confirmed mint transactions
	GasUsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "biomint_transaction_gas_used",
			Help:    "Gas used by confirmed mint transactions",
			Buckets: []float64{50_000, 100_000, 150_000, 200_000, 300_000, 500_000, 1_000_000},
		},
	)

	// PersistenceRaces counts confirmed mints that lost the uniqueness insert
	PersistenceRaces = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biomint_persistence_races_total",
			Help: "Confirmed mints whose uniqueness record insert hit an existing row",
		},
	)
)
