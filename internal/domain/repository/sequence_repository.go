package repository

import (
	"context"
	"time"
)

// SequenceRepository contador de números de documento por (prefijo, día).
type SequenceRepository interface {
	// Next reserva el siguiente consecutivo del día; se libera si la transacción hace rollback.
	Next(ctx context.Context, prefix string, day time.Time) (int, error)
}
