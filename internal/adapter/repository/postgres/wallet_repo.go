package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = `id, user_id, balance, currency, created_at, updated_at`

// CreateTx inserts a wallet inside an open transaction. Used by
// registration so the wallet lands atomically with its owner.
func (r *WalletRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO wallets (id, user_id, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		wallet.ID,
		wallet.UserID,
		decimalToNumeric(wallet.Balance),
		wallet.Currency,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)

	return mapPgError(err)
}

// GetByUserID retrieves the wallet owned by a user.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, userID))
}

// GetByUserIDForUpdate retrieves the wallet owned by a user with a
// FOR UPDATE lock held until the transaction ends.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`

	return scanWallet(pgxTx.QueryRow(ctx, query, userID))
}

// GetByUserIDsForUpdate locks the wallets of multiple users in one
// statement. ORDER BY id fixes the lock acquisition order globally, which
// keeps opposite-direction transfers on the same pair from deadlocking.
func (r *WalletRepository) GetByUserIDsForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := pgxTx.Query(ctx, query, userIDs)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		wallet, err := scanWalletRow(rows)
		if err != nil {
			return nil, err
		}

		wallets = append(wallets, wallet)
	}

	return wallets, mapPgError(rows.Err())
}

// UpdateBalance persists a new balance. The caller guarantees the row
// lock is held.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, walletID string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE wallets SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := pgxTx.Exec(ctx, query, walletID, decimalToNumeric(balance), updatedAt)

	return mapPgError(err)
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	wallet, err := scanWalletRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, mapPgError(err)
	}

	return wallet, nil
}

func scanWalletRow(row pgx.Row) (*domain.Wallet, error) {
	var (
		wallet  domain.Wallet
		balance pgtype.Numeric
	)

	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&balance,
		&wallet.Currency,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	wallet.Balance = numericToDecimal(balance)

	return &wallet, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
