package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila referenciada no existe (o aún está referenciada).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isCheckViolation 23514: p. ej. CHECK (current_stock >= 0).
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

// persistErr envuelve errores de la base como domain.PersistenceError.
func persistErr(op string, err error) error {
	return &domain.PersistenceError{Op: op, Err: err}
}
