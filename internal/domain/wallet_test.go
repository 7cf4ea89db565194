package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestWallet_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			expectError: false,
		},
		{
			name:        "debit fractional amount against fractional balance",
			balance:     decimal.RequireFromString("700.50"),
			debitAmount: decimal.RequireFromString("700.51"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{Balance: tt.balance}

			err := w.ValidateDebit(tt.debitAmount)

			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWallet_ApplyDebitCredit(t *testing.T) {
	w := &Wallet{Balance: decimal.RequireFromString("1000.00")}

	if got := w.ApplyDebit(decimal.RequireFromString("300.25")); !got.Equal(decimal.RequireFromString("699.75")) {
		t.Errorf("ApplyDebit = %s, want 699.75", got)
	}

	if got := w.ApplyCredit(decimal.RequireFromString("0.01")); !got.Equal(decimal.RequireFromString("1000.01")) {
		t.Errorf("ApplyCredit = %s, want 1000.01", got)
	}
}
