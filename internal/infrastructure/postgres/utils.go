package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Invoicing-api/internal/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	numericOutOfRange   = "22003"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool     { return pgCode(err) == uniqueViolation }
func isForeignKeyViolation(err error) bool { return pgCode(err) == foreignKeyViolation }
func isOutOfRange(err error) bool          { return pgCode(err) == numericOutOfRange }

// writeErr maps constraint violations of INSERT/UPDATE to domain errors.
func writeErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrConflict, op)
	case isOutOfRange(err):
		return fmt.Errorf("%w: %s: value out of range", domain.ErrInvalidInput, op)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// deleteErr a restrict-on-delete violation means the row is still referenced.
func deleteErr(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrInUse, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable maps "" to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
