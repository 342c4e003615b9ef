package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por (prefijo, día). La fila queda bloqueada hasta el fin de la
// transacción, así que dos creaciones simultáneas del mismo prefijo se serializan y un
// rollback devuelve el número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next reserva el siguiente consecutivo del día.
func (r *SequenceRepo) Next(ctx context.Context, prefix string, day time.Time) (int, error) {
	query := `
		INSERT INTO document_sequences (prefix, day, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, day)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`
	var n int
	if err := r.q.QueryRow(ctx, query, prefix, day.UTC().Format("2006-01-02")).Scan(&n); err != nil {
		return 0, wrap("next document number", err)
	}
	return n, nil
}
