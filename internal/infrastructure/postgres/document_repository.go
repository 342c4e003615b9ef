package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, number, kind, status, author_id, created_at, updated_at, delivery_date, sale_date`

func scanDocument(row rowScanner) (*entity.Document, error) {
	var d entity.Document
	var delivery, sale *time.Time
	if err := row.Scan(&d.ID, &d.Number, &d.Kind, &d.Status, &d.AuthorID,
		&d.CreatedAt, &d.UpdatedAt, &delivery, &sale); err != nil {
		return nil, err
	}
	if delivery != nil {
		d.Receipt = &entity.ReceiptDetails{DeliveryDate: *delivery}
	}
	if sale != nil {
		d.Issue = &entity.IssueDetails{SaleDate: *sale}
	}
	return &d, nil
}

// Create inserta el documento; un número repetido se reporta como domain.ErrConflict.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	var delivery, sale *time.Time
	if doc.Receipt != nil {
		delivery = &doc.Receipt.DeliveryDate
	}
	if doc.Issue != nil {
		sale = &doc.Issue.SaleDate
	}
	query := `
		INSERT INTO documents (number, kind, status, author_id, created_at, updated_at, delivery_date, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		doc.Number, doc.Kind, doc.Status, doc.AuthorID, doc.CreatedAt, doc.UpdatedAt, delivery, sale,
	).Scan(&doc.ID)
	if err != nil {
		return wrap("insert document", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetForUpdate obtiene el documento y bloquea la fila (SELECT FOR UPDATE).
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query string, id int64) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get document", err)
	}
	return d, nil
}

// UpdateStatus cambia el estado del documento.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id int64, status entity.DocumentStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE documents SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return wrap("update document status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("documento", id)
	}
	return nil
}

// List documentos del tipo indicado (todos si kind es vacío), del más reciente al más antiguo.
func (r *DocumentRepo) List(ctx context.Context, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($1 = '' OR kind = $1)
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(kind), limit, offset)
	if err != nil {
		return nil, wrap("list documents", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, wrap("scan document", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
