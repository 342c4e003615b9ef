package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement fila del diario de movimientos. Quantity es positiva en entradas
// y negativa en salidas; TransactionID agrupa las filas de un mismo cierre.
type StockMovement struct {
	ID                int64
	TransactionID     string
	DocumentID        int64
	ProductID         int64
	StorageLocationID int64
	Quantity          decimal.Decimal
	CreatedBy         int64
	CreatedAt         time.Time
}
