package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ documents.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los fallos de serialización y deadlocks del commit se devuelven como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSet(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrap("commit transaction", err)
	}
	return nil
}

// NewSet arma los repositorios sobre q (pool o tx).
func NewSet(q Querier) repository.Set {
	return repository.Set{
		Documents:   NewDocumentRepository(q),
		Lines:       NewDocumentLineRepository(q),
		Assignments: NewAssignmentRepository(q),
		Balances:    NewBalanceRepository(q),
		Movements:   NewStockMovementRepository(q),
		Locations:   NewLocationRepository(q),
		Products:    NewProductRepository(q),
		Warehouses:  NewWarehouseRepository(q),
		Employees:   NewEmployeeRepository(q),
		Sequences:   NewSequenceRepository(q),
		Snapshots:   NewSnapshotRepository(q),
	}
}
