package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// SnapshotRepository líneas de los documentos de inventario y de ocupación.
type SnapshotRepository interface {
	AddInventoryLines(ctx context.Context, lines []*entity.InventoryLine) error
	ListInventoryLines(ctx context.Context, documentID int64) ([]*entity.InventoryLine, error)
	AddStorageReportLines(ctx context.Context, lines []*entity.StorageReportLine) error
	ListStorageReportLines(ctx context.Context, documentID int64) ([]*entity.StorageReportLine, error)
}
