package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. The
// transactions table is append-only; there is no update or delete path.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, wallet_id, recipient_wallet_id, type, category, amount,
	balance_before, balance_after, reference, description, status, created_at, updated_at`

// Create appends one immutable ledger entry inside an open transaction.
// A duplicate (reference, type) pair surfaces as ErrDuplicateReference.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, wallet_id, recipient_wallet_id, type, category, amount,
			balance_before, balance_after, reference, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var description *string
	if entry.Description != "" {
		description = &entry.Description
	}

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.WalletID,
		entry.RecipientWalletID,
		entry.Type,
		entry.Category,
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.BalanceBefore),
		decimalToNumeric(entry.BalanceAfter),
		entry.Reference,
		description,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return mapPgError(err)
}

// GetByReference retrieves one entry by reference. With a shared transfer
// reference the credit leg sorts first; both legs carry the same reference,
// amount, and creation time, so either answers a duplicate-reference check.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1 ORDER BY type ASC LIMIT 1`

	entry, err := scanTransaction(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, mapPgError(err)
	}

	return entry, nil
}

// GetByReferenceForUser retrieves one entry by reference, restricted to
// wallets owned by the given user. The two legs of a transfer live on
// different wallets, so an owner only ever sees their own side.
func (r *TransactionRepository) GetByReferenceForUser(ctx context.Context, userID, reference string) (*domain.Transaction, error) {
	query := `
		SELECT t.id, t.wallet_id, t.recipient_wallet_id, t.type, t.category, t.amount,
			t.balance_before, t.balance_after, t.reference, t.description, t.status, t.created_at, t.updated_at
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1 AND t.reference = $2
		LIMIT 1
	`

	entry, err := scanTransaction(r.pool.QueryRow(ctx, query, userID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, mapPgError(err)
	}

	return entry, nil
}

// ListByWallet lists entries for a wallet, newest first.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListByUser lists entries for the wallet owned by a user, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT t.id, t.wallet_id, t.recipient_wallet_id, t.type, t.category, t.amount,
			t.balance_before, t.balance_after, t.reference, t.description, t.status, t.created_at, t.updated_at
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var entries []*domain.Transaction

	for rows.Next() {
		entry, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, mapPgError(rows.Err())
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		entry       domain.Transaction
		amount      pgtype.Numeric
		before      pgtype.Numeric
		after       pgtype.Numeric
		description *string
	)

	err := row.Scan(
		&entry.ID,
		&entry.WalletID,
		&entry.RecipientWalletID,
		&entry.Type,
		&entry.Category,
		&amount,
		&before,
		&after,
		&entry.Reference,
		&description,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)
	entry.BalanceBefore = numericToDecimal(before)
	entry.BalanceAfter = numericToDecimal(after)

	if description != nil {
		entry.Description = *description
	}

	return &entry, nil
}
