package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// DocumentLineRepository puerto de persistencia para líneas de documento.
type DocumentLineRepository interface {
	Create(ctx context.Context, line *entity.DocumentLine) error
	GetByID(ctx context.Context, id int64) (*entity.DocumentLine, error)
	FindByProduct(ctx context.Context, documentID, productID int64) (*entity.DocumentLine, error)
	UpdateQuantity(ctx context.Context, id int64, qty decimal.Decimal, at time.Time) error
	// ListByDocument en orden de creación.
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.DocumentLine, error)
	// CountByProduct agrupa líneas de los tipos indicados por producto, de mayor a menor.
	CountByProduct(ctx context.Context, kinds []entity.DocumentKind, limit int) ([]entity.ProductFrequency, error)
}

// AssignmentRepository puerto para las ubicaciones asignadas a líneas de entrada.
type AssignmentRepository interface {
	// Replace deja a la línea con exactamente esta asignación.
	Replace(ctx context.Context, a *entity.LineAssignment) error
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.LineAssignment, error)
}
