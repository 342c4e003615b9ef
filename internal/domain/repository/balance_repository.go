package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// BalanceRepository puerto del libro de saldos por (producto, ubicación).
type BalanceRepository interface {
	// Get devuelve (nil, nil) si el par no tiene fila.
	Get(ctx context.Context, productID, locationID int64) (*entity.ProductBalance, error)
	// ListByProductForUpdate bloquea todos los saldos del producto y los devuelve
	// por cantidad descendente (empates por ubicación ascendente).
	ListByProductForUpdate(ctx context.Context, productID int64) ([]*entity.ProductBalance, error)
	TotalByProduct(ctx context.Context, productID int64) (decimal.Decimal, error)
	// Increment suma qty al saldo del par; crea la fila si no existe.
	Increment(ctx context.Context, productID, locationID int64, qty decimal.Decimal, at time.Time) error
	// SetQuantity fija la cantidad de un saldo ya bloqueado.
	SetQuantity(ctx context.Context, id int64, qty decimal.Decimal, at time.Time) error
	List(ctx context.Context) ([]*entity.ProductBalance, error)
	ListAtOrBelow(ctx context.Context, threshold decimal.Decimal) ([]*entity.ProductBalance, error)
}

// StockMovementRepository diario de movimientos del libro.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.StockMovement, error)
}
