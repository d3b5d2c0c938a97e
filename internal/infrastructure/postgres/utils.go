package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// isCheckViolation CHECK (quantity >= 0) u otro CHECK.
func isCheckViolation(err error) bool { return pgCode(err) == codeCheckViolation }

// isRetryable conflictos entre transacciones que se resuelven repitiendo la transacción completa.
func isRetryable(err error) bool {
	switch pgCode(err) {
	case codeSerializationFail, codeDeadlockDetected:
		return true
	}
	return false
}

// wrapErr traduce errores del driver a errores de dominio.
func wrapErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrConflict, op)
	case isCheckViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, op)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
	}
}

// limitArg LIMIT NULL equivale a sin límite.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
