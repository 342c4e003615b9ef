package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"

	// constraintBalanceNonNegative CHECK que impide saldos negativos en product_balances.
	constraintBalanceNonNegative = "product_balances_quantity_nonnegative"
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
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isConcurrencyFailure serialización fallida o deadlock: la transacción puede repetirse.
func isConcurrencyFailure(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// isNegativeBalance el CHECK de product_balances rechazó un saldo negativo.
func isNegativeBalance(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == codeCheckViolation &&
		pgErr.ConstraintName == constraintBalanceNonNegative
}

// wrap anota err con la operación y lo traduce a errores de dominio cuando aplica.
func wrap(op string, err error) error {
	switch {
	case isUniqueViolation(err), isConcurrencyFailure(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	case isNegativeBalance(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrInsufficientStock, err)
	case pgCode(err) == codeCheckViolation:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
