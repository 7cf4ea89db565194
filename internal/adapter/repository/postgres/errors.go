package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/obi/gowallet/internal/domain"
)

// PostgreSQL error codes the adapter translates into domain errors.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
	pgErrLockNotAvailable     = "55P03"
	pgErrUniqueViolation      = "23505"
	pgErrCheckViolation       = "23514"
)

// mapPgError wraps transient conflicts and constraint violations in
// their domain sentinels so callers never match on SQLSTATE.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrSerializationFailure, pgErrDeadlock, pgErrLockNotAvailable:
		return fmt.Errorf("%w: %s", domain.ErrTxRetryable, pgErr.Code)
	case pgErrUniqueViolation:
		if pgErr.ConstraintName == "transactions_reference_type_key" {
			return domain.ErrDuplicateReference
		}
		return err
	default:
		return err
	}
}
