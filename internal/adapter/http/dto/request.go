package dto

import (
	"github.com/shopspring/decimal"

	"github.com/obi/gowallet/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FundWalletRequest represents a request to fund the caller's wallet.
type FundWalletRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// ToUseCaseInput converts to use case input. The user ID always comes
// from the authenticated token, never from the payload.
func (r *FundWalletRequest) ToUseCaseInput(userID string) usecase.FundInput {
	return usecase.FundInput{
		UserID:    userID,
		Amount:    r.Amount,
		Reference: r.Reference,
	}
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(userID string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		UserID: userID,
		Amount: r.Amount,
	}
}

// TransferRequest represents a wallet-to-wallet transfer request.
type TransferRequest struct {
	ToUserID    string          `json:"to_user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(fromUserID string) usecase.TransferInput {
	return usecase.TransferInput{
		FromUserID:  fromUserID,
		ToUserID:    r.ToUserID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}
