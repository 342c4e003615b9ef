package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBalanceView saldo de un producto en una ubicación con datos de catálogo.
type ProductBalanceView struct {
	ProductID     int64           `json:"product_id"`
	ArticleNumber string          `json:"article_number"`
	ProductName   string          `json:"product_name"`
	LocationID    int64           `json:"location_id"`
	LocationCode  string          `json:"location_code"`
	WarehouseID   int64           `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductFrequencyView producto con la cantidad de líneas de entrada/salida en que aparece.
type ProductFrequencyView struct {
	ProductID     int64  `json:"product_id"`
	ArticleNumber string `json:"article_number"`
	ProductName   string `json:"product_name"`
	Lines         int    `json:"lines"`
}

// RackUtilizationView peso acumulado de un rack frente a su límite.
type RackUtilizationView struct {
	WarehouseID int64           `json:"warehouse_id"`
	Building    string          `json:"building"`
	Room        string          `json:"room"`
	Rack        string          `json:"rack"`
	Locations   int             `json:"locations"`
	Weight      decimal.Decimal `json:"weight"`
	Ceiling     decimal.Decimal `json:"ceiling"`
	Utilization decimal.Decimal `json:"utilization_pct"`
}
