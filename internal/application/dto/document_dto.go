package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest body para crear un documento. Kind se toma de la ruta si viene vacío.
type CreateDocumentRequest struct {
	Kind         string     `json:"kind"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	SaleDate     *time.Time `json:"sale_date,omitempty"`
}

// AddLineRequest body para POST /api/{documento}/:id/lines.
type AddLineRequest struct {
	ProductID   int64           `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	BatchNumber string          `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	PickerID    *int64          `json:"picker_id,omitempty"`
}

// AddLineResponse línea creada o acumulada.
type AddLineResponse struct {
	LineID   int64           `json:"line_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Merged   bool            `json:"merged"`
}

// LocationAssignment destino de una línea de entrada.
type LocationAssignment struct {
	LineID     int64 `json:"line_id"`
	LocationID int64 `json:"location_id"`
}

// AssignLocationsRequest body para PUT /api/goods-receipts/:id/assign-locations.
type AssignLocationsRequest struct {
	Assignments []LocationAssignment `json:"assignments"`
}

// TransitionRequest body para PUT /api/documents/:id/status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// DocumentSummary fila de listados.
type DocumentSummary struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentResponse vista completa de un documento con sus líneas.
type DocumentResponse struct {
	DocumentSummary
	AuthorName     string                      `json:"author_name"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeliveryDate   *time.Time                  `json:"delivery_date,omitempty"`
	SaleDate       *time.Time                  `json:"sale_date,omitempty"`
	Lines          []DocumentLineResponse      `json:"lines,omitempty"`
	InventoryLines []InventoryLineResponse     `json:"inventory_lines,omitempty"`
	StorageLines   []StorageReportLineResponse `json:"storage_lines,omitempty"`
}

// DocumentLineResponse línea de entrada o salida.
type DocumentLineResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ArticleNumber string          `json:"article_number"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	PickerID      *int64          `json:"picker_id,omitempty"`
	LocationID    *int64          `json:"location_id,omitempty"`
	LocationCode  string          `json:"location_code,omitempty"`
}

// InventoryLineResponse línea de un documento de inventario.
type InventoryLineResponse struct {
	ProductID     int64           `json:"product_id"`
	ArticleNumber string          `json:"article_number"`
	ProductName   string          `json:"product_name"`
	LocationID    int64           `json:"location_id"`
	LocationCode  string          `json:"location_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	RecordedAt    time.Time       `json:"recorded_at"`
}

// StorageReportLineResponse ocupación de una ubicación en un reporte.
type StorageReportLineResponse struct {
	LocationID    int64           `json:"location_id"`
	LocationCode  string          `json:"location_code"`
	CurrentWeight decimal.Decimal `json:"current_weight"`
	StockWeight   decimal.Decimal `json:"stock_weight"`
	Ceiling       decimal.Decimal `json:"ceiling"`
	Utilization   decimal.Decimal `json:"utilization_pct"`
	RecordedAt    time.Time       `json:"recorded_at"`
}
