package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameWallet        = errors.New("cannot transfer to same wallet")
	ErrCurrencyMismatch  = errors.New("cannot transfer between different currencies")

	// Transaction errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDuplicateReference     = errors.New("transaction reference already exists")
	ErrMissingReference       = errors.New("transaction reference is required")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrBalanceMismatch        = errors.New("balance after does not match balance before and amount")

	// ErrTxRetryable marks transient storage failures (lock timeout,
	// deadlock, serialization) that are safe to retry.
	ErrTxRetryable = errors.New("transient storage conflict, retry")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email or phone already exists")
	ErrUserBlacklisted    = errors.New("user is not eligible for registration")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
