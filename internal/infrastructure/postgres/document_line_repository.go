package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.DocumentLineRepository = (*DocumentLineRepo)(nil)
	_ repository.AssignmentRepository   = (*AssignmentRepo)(nil)
)

// DocumentLineRepo implementación de DocumentLineRepository sobre PostgreSQL.
// Los detalles de entrada o salida se guardan en columnas anulables de la misma tabla.
type DocumentLineRepo struct {
	q Querier
}

// NewDocumentLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentLineRepository(q Querier) *DocumentLineRepo {
	return &DocumentLineRepo{q: q}
}

const lineColumns = `l.id, l.document_id, l.product_id, l.quantity, l.created_at, l.updated_at,
	d.kind, l.batch_number, l.expiry_date, l.picker_id`

const lineFrom = ` FROM document_lines l JOIN documents d ON d.id = l.document_id `

func scanLine(row rowScanner) (*entity.DocumentLine, error) {
	var l entity.DocumentLine
	var kind entity.DocumentKind
	var batch *string
	var expiry *time.Time
	var picker *int64
	if err := row.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
		&kind, &batch, &expiry, &picker); err != nil {
		return nil, err
	}
	switch kind {
	case entity.KindGoodsReceipt:
		l.Receipt = &entity.ReceiptLineDetails{ExpiryDate: expiry}
		if batch != nil {
			l.Receipt.BatchNumber = *batch
		}
	case entity.KindGoodsIssue:
		l.Issue = &entity.IssueLineDetails{PickerID: picker}
	}
	return &l, nil
}

// Create inserta la línea; (documento, producto) es único.
func (r *DocumentLineRepo) Create(ctx context.Context, line *entity.DocumentLine) error {
	var batch *string
	var expiry *time.Time
	var picker *int64
	if line.Receipt != nil {
		if line.Receipt.BatchNumber != "" {
			batch = &line.Receipt.BatchNumber
		}
		expiry = line.Receipt.ExpiryDate
	}
	if line.Issue != nil {
		picker = line.Issue.PickerID
	}
	query := `
		INSERT INTO document_lines (document_id, product_id, quantity, batch_number, expiry_date, picker_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		line.DocumentID, line.ProductID, line.Quantity, batch, expiry, picker, line.CreatedAt, line.UpdatedAt,
	).Scan(&line.ID)
	if err != nil {
		return wrap("insert document line", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *DocumentLineRepo) GetByID(ctx context.Context, id int64) (*entity.DocumentLine, error) {
	return r.one(ctx, `SELECT `+lineColumns+lineFrom+`WHERE l.id = $1`, id)
}

// FindByProduct línea del producto en el documento, si existe.
func (r *DocumentLineRepo) FindByProduct(ctx context.Context, documentID, productID int64) (*entity.DocumentLine, error) {
	return r.one(ctx, `SELECT `+lineColumns+lineFrom+`WHERE l.document_id = $1 AND l.product_id = $2`, documentID, productID)
}

func (r *DocumentLineRepo) one(ctx context.Context, query string, args ...any) (*entity.DocumentLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get document line", err)
	}
	return l, nil
}

// UpdateQuantity fija la cantidad de la línea.
func (r *DocumentLineRepo) UpdateQuantity(ctx context.Context, id int64, qty decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE document_lines SET quantity = $2, updated_at = $3 WHERE id = $1`, id, qty, at)
	if err != nil {
		return wrap("update line quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("línea", id)
	}
	return nil
}

// ListByDocument líneas del documento en orden de creación.
func (r *DocumentLineRepo) ListByDocument(ctx context.Context, documentID int64) ([]*entity.DocumentLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+lineFrom+`WHERE l.document_id = $1 ORDER BY l.id`, documentID)
	if err != nil {
		return nil, wrap("list document lines", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, wrap("scan document line", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// CountByProduct cantidad de líneas por producto en documentos de los tipos indicados.
func (r *DocumentLineRepo) CountByProduct(ctx context.Context, kinds []entity.DocumentKind, limit int) ([]entity.ProductFrequency, error) {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	query := `
		SELECT l.product_id, COUNT(*)` + lineFrom + `
		WHERE cardinality($1::text[]) = 0 OR d.kind = ANY($1)
		GROUP BY l.product_id
		ORDER BY COUNT(*) DESC, l.product_id
		LIMIT NULLIF($2, 0)`
	rows, err := r.q.Query(ctx, query, names, limit)
	if err != nil {
		return nil, wrap("count lines by product", err)
	}
	defer rows.Close()
	var list []entity.ProductFrequency
	for rows.Next() {
		var f entity.ProductFrequency
		if err := rows.Scan(&f.ProductID, &f.Lines); err != nil {
			return nil, wrap("scan product frequency", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// AssignmentRepo ubicaciones asignadas a líneas de entrada.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Replace deja a la línea con exactamente la ubicación indicada.
func (r *AssignmentRepo) Replace(ctx context.Context, a *entity.LineAssignment) error {
	query := `
		INSERT INTO line_assignments (document_line_id, storage_location_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (document_line_id)
		DO UPDATE SET storage_location_id = EXCLUDED.storage_location_id, created_at = EXCLUDED.created_at
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, a.DocumentLineID, a.StorageLocationID, a.CreatedAt).Scan(&a.ID); err != nil {
		return wrap("replace line assignment", err)
	}
	return nil
}

// ListByDocument asignaciones de las líneas del documento.
func (r *AssignmentRepo) ListByDocument(ctx context.Context, documentID int64) ([]*entity.LineAssignment, error) {
	query := `
		SELECT a.id, a.document_line_id, a.storage_location_id, a.created_at
		FROM line_assignments a
		JOIN document_lines l ON l.id = a.document_line_id
		WHERE l.document_id = $1
		ORDER BY a.document_line_id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrap("list line assignments", err)
	}
	defer rows.Close()
	var list []*entity.LineAssignment
	for rows.Next() {
		var a entity.LineAssignment
		if err := rows.Scan(&a.ID, &a.DocumentLineID, &a.StorageLocationID, &a.CreatedAt); err != nil {
			return nil, wrap("scan line assignment", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
