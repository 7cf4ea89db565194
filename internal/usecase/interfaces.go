package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obi/gowallet/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	CreateTx(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Wallet, error)
	GetByUserIDsForUpdate(ctx context.Context, tx Transaction, userIDs []string) ([]*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, walletID string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Transaction) error
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	GetByReferenceForUser(ctx context.Context, userID, reference string) (*domain.Transaction, error)
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique row IDs and transaction references.
type IDGenerator interface {
	Generate() string
	Reference(category domain.TransactionCategory) string
}

// Retrier re-runs a unit of work when it fails with a transient storage
// conflict (lock timeout, deadlock, serialization failure).
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
