package usecase

import (
	"context"

	"github.com/obi/gowallet/internal/domain"
)

// TransactionUseCase handles read access to the ledger.
type TransactionUseCase struct {
	txnRepo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txnRepo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{txnRepo: txnRepo}
}

// ListByWalletInput represents input for listing a wallet's entries.
type ListByWalletInput struct {
	WalletID string
	Limit    int
	Offset   int
}

// ListByWallet lists ledger entries for a wallet, newest first.
func (uc *TransactionUseCase) ListByWallet(ctx context.Context, input ListByWalletInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByWallet(ctx, input.WalletID, limit, offset)
}

// ListByUserInput represents input for listing a user's entries.
type ListByUserInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListByUser lists ledger entries for the wallet owned by a user.
func (uc *TransactionUseCase) ListByUser(ctx context.Context, input ListByUserInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// GetByReference retrieves a ledger entry by its unique reference. Lookups
// are scoped to wallets the caller owns; a reference that resolves only to
// someone else's wallet reads as not found.
func (uc *TransactionUseCase) GetByReference(ctx context.Context, userID, reference string) (*domain.Transaction, error) {
	if reference == "" {
		return nil, domain.ErrMissingReference
	}

	return uc.txnRepo.GetByReferenceForUser(ctx, userID, reference)
}
