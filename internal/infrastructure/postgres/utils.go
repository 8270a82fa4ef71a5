package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Códigos SQLSTATE que indican contención y se resuelven reintentando.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

func isContention(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

// classify traduce errores del driver a errores de dominio:
// contención -> ErrConcurrencyConflict, único -> ErrDuplicate, resto -> ErrStorageFailure.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isContention(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConcurrencyConflict, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageFailure, err)
	}
}
