package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad de trabajo: si fn devuelve error
// no queda ninguna escritura aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
}

// Metrics contadores del motor de documentos.
type Metrics interface {
	DocumentCreated(kind string)
	TransitionApplied(kind, target, outcome string)
	ConflictRetried(operation string)
}

type noopMetrics struct{}

func (noopMetrics) DocumentCreated(string)                   {}
func (noopMetrics) TransitionApplied(string, string, string) {}
func (noopMetrics) ConflictRetried(string)                   {}

// SpreadsheetExporter genera libros de Excel.
type SpreadsheetExporter interface {
	BalancesWorkbook(rows []dto.ProductBalanceView) ([]byte, error)
	DocumentsWorkbook(docs []dto.DocumentSummary) ([]byte, error)
}

// DocumentRenderer genera la representación imprimible de un documento.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, doc *dto.DocumentResponse) ([]byte, error)
}

// Config parámetros del motor.
type Config struct {
	// RackCeiling límite de peso para racks sin límite propio.
	RackCeiling decimal.Decimal
	// NumberRetries reintentos ante ErrConflict al crear documentos.
	NumberRetries int
	// LowStockThreshold umbral por defecto de stock bajo.
	LowStockThreshold decimal.Decimal
}

// DefaultConfig valores por defecto.
func DefaultConfig() Config {
	return Config{
		RackCeiling:       inventory.DefaultRackCeiling,
		NumberRetries:     3,
		LowStockThreshold: decimal.NewFromInt(10),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if !c.RackCeiling.IsPositive() {
		c.RackCeiling = d.RackCeiling
	}
	if c.NumberRetries < 0 {
		c.NumberRetries = 0
	}
	if c.LowStockThreshold.IsNegative() {
		c.LowStockThreshold = d.LowStockThreshold
	}
	return c
}

// Clock fuente de la hora actual.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
