package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet operation metrics
	FundingsCreated    prometheus.Counter
	WithdrawalsCreated prometheus.Counter
	TransfersCreated   prometheus.Counter
	OperationDuration  *prometheus.HistogramVec
	OperationAmount    *prometheus.HistogramVec
	OperationErrors    *prometheus.CounterVec
	OperationRetries   prometheus.Counter

	// User metrics
	UsersRegistered     prometheus.Counter
	BlacklistRejections prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		FundingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_fundings_created_total",
			Help: "Total number of wallet fundings",
		}),
		WithdrawalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_withdrawals_created_total",
			Help: "Total number of withdrawals",
		}),
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_transfers_created_total",
			Help: "Total number of transfers",
		}),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_operation_duration_seconds",
				Help:    "Duration of wallet operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		OperationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_operation_amount",
				Help:    "Operation amounts",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 5000000},
			},
			[]string{"operation"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_operation_errors_total",
				Help: "Total number of operation errors by type",
			},
			[]string{"operation", "error_type"},
		),
		OperationRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_operation_retries_total",
			Help: "Total number of retried operations after transient conflicts",
		}),

		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_users_registered_total",
			Help: "Total number of registered users",
		}),
		BlacklistRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_blacklist_rejections_total",
			Help: "Total number of registrations rejected by blacklist screening",
		}),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
