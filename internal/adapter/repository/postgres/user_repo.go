package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// UserRepository implements user persistence
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, phone, password_hash, first_name, last_name, is_blacklisted, created_at, updated_at`

// CreateTx inserts a new user inside an open transaction
func (r *UserRepository) CreateTx(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO users (id, email, phone, password_hash, first_name, last_name, is_blacklisted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.IsBlacklisted,
		user.CreatedAt,
		user.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrUserExists
	}

	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return r.scanOne(ctx, query, email)
}

// GetByEmailOrPhone retrieves a user matching either identity
func (r *UserRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR phone = $2`

	return r.scanOne(ctx, query, email, phone)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.IsBlacklisted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}
