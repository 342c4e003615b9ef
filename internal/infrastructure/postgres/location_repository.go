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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones y límites de rack sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, warehouse_id, building, room, rack, spot, current_weight, updated_at`

func scanLocation(row rowScanner) (*entity.StorageLocation, error) {
	var l entity.StorageLocation
	if err := row.Scan(&l.ID, &l.WarehouseID, &l.Building, &l.Room, &l.Rack, &l.Spot,
		&l.CurrentWeight, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.StorageLocation, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM storage_locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get location", err)
	}
	return l, nil
}

// LockRack bloquea las ubicaciones del rack en orden de ID.
func (r *LocationRepo) LockRack(ctx context.Context, key entity.RackKey) ([]*entity.StorageLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM storage_locations
		WHERE warehouse_id = $1 AND building = $2 AND room = $3 AND rack = $4
		ORDER BY id
		FOR UPDATE`
	return r.list(ctx, "lock rack", query, key.WarehouseID, key.Building, key.Room, key.Rack)
}

// List todas las ubicaciones.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.StorageLocation, error) {
	return r.list(ctx, "list locations", `SELECT `+locationColumns+` FROM storage_locations ORDER BY id`)
}

func (r *LocationRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StorageLocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateWeight fija el peso acumulado de la ubicación.
func (r *LocationRepo) UpdateWeight(ctx context.Context, id int64, weight decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE storage_locations SET current_weight = $2, updated_at = $3 WHERE id = $1`, id, weight, at)
	if err != nil {
		return wrap("update location weight", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("ubicación", id)
	}
	return nil
}

// RackCeiling límite propio del rack o nil si no tiene.
func (r *LocationRepo) RackCeiling(ctx context.Context, key entity.RackKey) (*decimal.Decimal, error) {
	query := `
		SELECT ceiling FROM rack_ceilings
		WHERE warehouse_id = $1 AND building = $2 AND room = $3 AND rack = $4`
	var c decimal.Decimal
	err := r.q.QueryRow(ctx, query, key.WarehouseID, key.Building, key.Room, key.Rack).Scan(&c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get rack ceiling", err)
	}
	return &c, nil
}
