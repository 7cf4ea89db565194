package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// TransactionCategory classifies what caused a ledger entry.
type TransactionCategory string

const (
	CategoryFunding    TransactionCategory = "funding"
	CategoryTransfer   TransactionCategory = "transfer"
	CategoryWithdrawal TransactionCategory = "withdrawal"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is one immutable ledger entry. A transfer produces two
// entries sharing a reference: a debit on the sender and a credit on the
// recipient, each pointing at the other wallet via RecipientWalletID.
type Transaction struct {
	ID                string
	WalletID          string
	RecipientWalletID *string
	Type              TransactionType
	Category          TransactionCategory
	Amount            decimal.Decimal
	BalanceBefore     decimal.Decimal
	BalanceAfter      decimal.Decimal
	Reference         string
	Description       string
	Status            TransactionStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks internal consistency of an entry before it is written.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Reference == "" {
		return ErrMissingReference
	}

	var want decimal.Decimal
	switch t.Type {
	case TypeCredit:
		want = t.BalanceBefore.Add(t.Amount)
	case TypeDebit:
		want = t.BalanceBefore.Sub(t.Amount)
	default:
		return ErrInvalidTransactionType
	}

	if !t.BalanceAfter.Equal(want) {
		return ErrBalanceMismatch
	}

	return nil
}
