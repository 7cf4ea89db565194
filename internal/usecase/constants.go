package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Limits are the configured amount bounds for wallet operations.
type Limits struct {
	MinDeposit    decimal.Decimal
	MaxDeposit    decimal.Decimal
	MinWithdrawal decimal.Decimal
}

// DefaultLimits returns the stock NGN limits.
func DefaultLimits() Limits {
	return Limits{
		MinDeposit:    decimal.NewFromInt(100),
		MaxDeposit:    decimal.NewFromInt(5_000_000),
		MinWithdrawal: decimal.NewFromInt(100),
	}
}
