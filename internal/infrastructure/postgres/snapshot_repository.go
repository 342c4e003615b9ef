package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo líneas de documentos de inventario y de ocupación. Las altas usan COPY.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// AddInventoryLines copia las líneas en bloque.
func (r *SnapshotRepo) AddInventoryLines(ctx context.Context, lines []*entity.InventoryLine) error {
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"inventory_lines"},
		[]string{"document_id", "product_id", "storage_location_id", "quantity", "recorded_at"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			return []any{l.DocumentID, l.ProductID, l.StorageLocationID, l.Quantity, l.RecordedAt}, nil
		}),
	)
	if err != nil {
		return wrap("copy inventory lines", err)
	}
	return nil
}

// ListInventoryLines líneas del documento por producto y ubicación.
func (r *SnapshotRepo) ListInventoryLines(ctx context.Context, documentID int64) ([]*entity.InventoryLine, error) {
	query := `
		SELECT id, document_id, product_id, storage_location_id, quantity, recorded_at
		FROM inventory_lines WHERE document_id = $1
		ORDER BY product_id, storage_location_id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrap("list inventory lines", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLine
	for rows.Next() {
		var l entity.InventoryLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.StorageLocationID, &l.Quantity, &l.RecordedAt); err != nil {
			return nil, wrap("scan inventory line", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// AddStorageReportLines copia las líneas en bloque.
func (r *SnapshotRepo) AddStorageReportLines(ctx context.Context, lines []*entity.StorageReportLine) error {
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"storage_report_lines"},
		[]string{"document_id", "storage_location_id", "current_weight", "stock_weight", "ceiling", "utilization", "recorded_at"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			return []any{l.DocumentID, l.StorageLocationID, l.CurrentWeight, l.StockWeight, l.Ceiling, l.Utilization, l.RecordedAt}, nil
		}),
	)
	if err != nil {
		return wrap("copy storage report lines", err)
	}
	return nil
}

// ListStorageReportLines líneas del reporte por ubicación.
func (r *SnapshotRepo) ListStorageReportLines(ctx context.Context, documentID int64) ([]*entity.StorageReportLine, error) {
	query := `
		SELECT id, document_id, storage_location_id, current_weight, stock_weight, ceiling, utilization, recorded_at
		FROM storage_report_lines WHERE document_id = $1
		ORDER BY storage_location_id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrap("list storage report lines", err)
	}
	defer rows.Close()
	var list []*entity.StorageReportLine
	for rows.Next() {
		var l entity.StorageReportLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.StorageLocationID, &l.CurrentWeight, &l.StockWeight,
			&l.Ceiling, &l.Utilization, &l.RecordedAt); err != nil {
			return nil, wrap("scan storage report line", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
