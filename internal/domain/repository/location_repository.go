package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LocationRepository puerto para ubicaciones y su peso acumulado.
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.StorageLocation, error)
	// LockRack bloquea y devuelve todas las ubicaciones del rack.
	LockRack(ctx context.Context, key entity.RackKey) ([]*entity.StorageLocation, error)
	List(ctx context.Context) ([]*entity.StorageLocation, error)
	UpdateWeight(ctx context.Context, id int64, weight decimal.Decimal, at time.Time) error
	// RackCeiling devuelve el límite propio del rack o nil si usa el valor por defecto.
	RackCeiling(ctx context.Context, key entity.RackKey) (*decimal.Decimal, error)
}
