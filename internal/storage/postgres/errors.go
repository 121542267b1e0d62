package postgres

import (
	"errors"
	"fmt"

	"github.com/hongminglow/adboard-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// mapError translates driver errors into storage sentinels. Constraint
// violations keep the constraint name in the message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, pgErr.ConstraintName)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: %s", storage.ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return err
}
