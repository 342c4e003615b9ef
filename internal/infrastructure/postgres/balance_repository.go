package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.BalanceRepository       = (*BalanceRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// BalanceRepo libro de saldos por (producto, ubicación) sobre PostgreSQL.
// El CHECK product_balances_quantity_nonnegative impide saldos negativos; violarlo se reporta como domain.ErrInsufficientStock.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const balanceColumns = `id, product_id, storage_location_id, quantity, updated_at`

func scanBalance(row rowScanner) (*entity.ProductBalance, error) {
	var b entity.ProductBalance
	if err := row.Scan(&b.ID, &b.ProductID, &b.StorageLocationID, &b.Quantity, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Get obtiene el saldo del par o (nil, nil) si no existe.
func (r *BalanceRepo) Get(ctx context.Context, productID, locationID int64) (*entity.ProductBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE product_id = $1 AND storage_location_id = $2`
	b, err := scanBalance(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get balance", err)
	}
	return b, nil
}

// ListByProductForUpdate bloquea los saldos del producto, de mayor a menor cantidad.
func (r *BalanceRepo) ListByProductForUpdate(ctx context.Context, productID int64) ([]*entity.ProductBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM product_balances
		WHERE product_id = $1
		ORDER BY quantity DESC, storage_location_id
		FOR UPDATE`
	return r.list(ctx, "lock balances", query, productID)
}

// TotalByProduct suma de los saldos del producto en todas las ubicaciones.
func (r *BalanceRepo) TotalByProduct(ctx context.Context, productID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM product_balances WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, wrap("total balance", err)
	}
	return total, nil
}

// Increment suma qty al saldo del par, creando la fila si no existe.
func (r *BalanceRepo) Increment(ctx context.Context, productID, locationID int64, qty decimal.Decimal, at time.Time) error {
	query := `
		INSERT INTO product_balances (product_id, storage_location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, storage_location_id)
		DO UPDATE SET quantity = product_balances.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, productID, locationID, qty, at); err != nil {
		return wrap("increment balance", err)
	}
	return nil
}

// SetQuantity fija la cantidad de un saldo ya bloqueado.
func (r *BalanceRepo) SetQuantity(ctx context.Context, id int64, qty decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE product_balances SET quantity = $2, updated_at = $3 WHERE id = $1`, id, qty, at)
	if err != nil {
		return wrap("set balance", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("saldo", id)
	}
	return nil
}

// List todos los saldos por producto y ubicación.
func (r *BalanceRepo) List(ctx context.Context) ([]*entity.ProductBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances ORDER BY product_id, storage_location_id`
	return r.list(ctx, "list balances", query)
}

// ListAtOrBelow saldos con cantidad menor o igual a threshold.
func (r *BalanceRepo) ListAtOrBelow(ctx context.Context, threshold decimal.Decimal) ([]*entity.ProductBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM product_balances
		WHERE quantity <= $1
		ORDER BY product_id, storage_location_id`
	return r.list(ctx, "list low balances", query, threshold)
}

func (r *BalanceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.ProductBalance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.ProductBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// StockMovementRepo diario de movimientos del libro.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento con signo (positivo entrada, negativo salida).
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_id, document_id, product_id, storage_location_id, quantity, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.DocumentID, m.ProductID, m.StorageLocationID, m.Quantity, m.CreatedBy, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return wrap("insert stock movement", err)
	}
	return nil
}

// ListByDocument movimientos generados por el documento.
func (r *StockMovementRepo) ListByDocument(ctx context.Context, documentID int64) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id::text, document_id, product_id, storage_location_id, quantity, created_by, created_at
		FROM stock_movements WHERE document_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrap("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.DocumentID, &m.ProductID,
			&m.StorageLocationID, &m.Quantity, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, wrap("scan stock movement", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
