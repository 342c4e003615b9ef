package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBalance cantidad de un producto en una ubicación (único por par).
type ProductBalance struct {
	ID                int64
	ProductID         int64
	StorageLocationID int64
	Quantity          decimal.Decimal
	UpdatedAt         time.Time
}
