package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLine copia de un saldo al momento de crear un documento de inventario.
type InventoryLine struct {
	ID                int64
	DocumentID        int64
	ProductID         int64
	StorageLocationID int64
	Quantity          decimal.Decimal
	RecordedAt        time.Time
}

// StorageReportLine ocupación de una ubicación al momento del reporte.
// Utilization es el porcentaje del límite del rack que representa CurrentWeight.
type StorageReportLine struct {
	ID                int64
	DocumentID        int64
	StorageLocationID int64
	CurrentWeight     decimal.Decimal
	StockWeight       decimal.Decimal
	Ceiling           decimal.Decimal
	Utilization       decimal.Decimal
	RecordedAt        time.Time
}

// ProductFrequency cantidad de líneas de entrada/salida en que aparece un producto.
type ProductFrequency struct {
	ProductID int64
	Lines     int
}
