package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency every wallet is created with.
const DefaultCurrency = "NGN"

// Wallet holds the spendable balance for exactly one user.
type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the wallet can be debited by amount without
// going negative.
func (w *Wallet) ValidateDebit(amount decimal.Decimal) error {
	if w.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the new balance after a debit.
func (w *Wallet) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (w *Wallet) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}
