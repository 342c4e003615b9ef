package documents

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// lookup resuelve referencias de catálogo una sola vez por unidad de trabajo.
type lookup struct {
	repos       repository.Set
	ceiling     decimal.Decimal
	products    map[int64]*entity.Product
	locations   map[int64]*entity.StorageLocation
	warehouses  map[int64]*entity.Warehouse
	rackCeiling map[entity.RackKey]decimal.Decimal
}

func newLookup(repos repository.Set, defaultCeiling decimal.Decimal) *lookup {
	return &lookup{
		repos:       repos,
		ceiling:     defaultCeiling,
		products:    make(map[int64]*entity.Product),
		locations:   make(map[int64]*entity.StorageLocation),
		warehouses:  make(map[int64]*entity.Warehouse),
		rackCeiling: make(map[entity.RackKey]decimal.Decimal),
	}
}

func (l *lookup) product(ctx context.Context, id int64) (*entity.Product, error) {
	if p, ok := l.products[id]; ok {
		return p, nil
	}
	p, err := l.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	l.products[id] = p
	return p, nil
}

func (l *lookup) location(ctx context.Context, id int64) (*entity.StorageLocation, error) {
	if loc, ok := l.locations[id]; ok {
		return loc, nil
	}
	loc, err := l.repos.Locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NewNotFound("ubicación", id)
	}
	l.locations[id] = loc
	return loc, nil
}

// warehouse devuelve nil sin error si la bodega no existe.
func (l *lookup) warehouse(ctx context.Context, id int64) (*entity.Warehouse, error) {
	if w, ok := l.warehouses[id]; ok {
		return w, nil
	}
	w, err := l.repos.Warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.warehouses[id] = w
	return w, nil
}

// ceilingFor límite propio del rack o el valor configurado.
func (l *lookup) ceilingFor(ctx context.Context, key entity.RackKey) (decimal.Decimal, error) {
	if c, ok := l.rackCeiling[key]; ok {
		return c, nil
	}
	c, err := l.repos.Locations.RackCeiling(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	ceiling := l.ceiling
	if c != nil {
		ceiling = *c
	}
	l.rackCeiling[key] = ceiling
	return ceiling, nil
}

// employee valida que el empleado exista y esté activo.
func employee(ctx context.Context, repos repository.Set, id int64) (*entity.Employee, error) {
	e, err := repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewNotFound("empleado", id)
	}
	if !e.IsActive {
		return nil, domain.ErrForbidden
	}
	return e, nil
}
