package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"noticebase/pkg/platform/sentinel"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify wraps constraint failures with sentinel.ErrConflict and leaves
// everything else as a plain wrapped error.
func classify(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, sentinel.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
