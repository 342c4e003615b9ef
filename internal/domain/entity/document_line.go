package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLine una cantidad de producto dentro de un documento.
type DocumentLine struct {
	ID         int64
	DocumentID int64
	ProductID  int64
	Quantity   decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Receipt    *ReceiptLineDetails
	Issue      *IssueLineDetails
}

// ReceiptLineDetails metadatos de lote de una línea de entrada.
type ReceiptLineDetails struct {
	BatchNumber string
	ExpiryDate  *time.Time
}

// IssueLineDetails empleado que prepara una línea de salida.
type IssueLineDetails struct {
	PickerID *int64
}

// LineAssignment ubicación destino de una línea de entrada (a lo sumo una por línea).
type LineAssignment struct {
	ID                int64
	DocumentLineID    int64
	StorageLocationID int64
	CreatedAt         time.Time
}
