package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para documentos.
// GetByID y GetForUpdate devuelven (nil, nil) si el documento no existe.
type DocumentRepository interface {
	// Create asigna ID. Un número repetido devuelve domain.ErrConflict.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	// GetForUpdate bloquea el documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Document, error)
	UpdateStatus(ctx context.Context, id int64, status entity.DocumentStatus, at time.Time) error
	List(ctx context.Context, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error)
}
