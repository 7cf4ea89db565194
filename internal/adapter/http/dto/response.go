package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse represents a successful login or registration.
type AuthResponse struct {
	Token  string          `json:"token"`
	User   *UserResponse   `json:"user"`
	Wallet *WalletResponse `json:"wallet,omitempty"`
}

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts domain wallet to response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   w.Balance,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID                string          `json:"id"`
	WalletID          string          `json:"wallet_id"`
	RecipientWalletID *string         `json:"recipient_wallet_id,omitempty"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	BalanceBefore     decimal.Decimal `json:"balance_before"`
	BalanceAfter      decimal.Decimal `json:"balance_after"`
	Reference         string          `json:"reference"`
	Description       string          `json:"description,omitempty"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                t.ID,
		WalletID:          t.WalletID,
		RecipientWalletID: t.RecipientWalletID,
		Type:              string(t.Type),
		Category:          string(t.Category),
		Amount:            t.Amount,
		BalanceBefore:     t.BalanceBefore,
		BalanceAfter:      t.BalanceAfter,
		Reference:         t.Reference,
		Description:       t.Description,
		Status:            string(t.Status),
		CreatedAt:         t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(entries []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = TransactionFromDomain(e)
	}
	return result
}

// FundResponse represents the outcome of a funding or withdrawal.
type FundResponse struct {
	Wallet      *WalletResponse      `json:"wallet"`
	Transaction *TransactionResponse `json:"transaction"`
}

// FundFromResult converts a funding result to a response.
func FundFromResult(r *usecase.FundResult) *FundResponse {
	return &FundResponse{
		Wallet:      WalletFromDomain(r.Wallet),
		Transaction: TransactionFromDomain(r.Transaction),
	}
}

// WithdrawFromResult converts a withdrawal result to a response.
func WithdrawFromResult(r *usecase.WithdrawResult) *FundResponse {
	return &FundResponse{
		Wallet:      WalletFromDomain(r.Wallet),
		Transaction: TransactionFromDomain(r.Transaction),
	}
}

// TransferResponse represents the outcome of a transfer. Only the
// sender's side is exposed; the recipient's balance is theirs alone.
type TransferResponse struct {
	Reference   string               `json:"reference"`
	Wallet      *WalletResponse      `json:"wallet"`
	Transaction *TransactionResponse `json:"transaction"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Reference:   r.DebitEntry.Reference,
		Wallet:      WalletFromDomain(r.FromWallet),
		Transaction: TransactionFromDomain(r.DebitEntry),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
