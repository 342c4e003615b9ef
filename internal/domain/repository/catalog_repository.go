package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository lectura del catálogo de productos.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}

// WarehouseRepository lectura de bodegas.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
}

// EmployeeRepository lectura de empleados.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
}

// CatalogWriter carga de datos maestros (semillas y pruebas); asigna IDs si vienen en cero.
type CatalogWriter interface {
	AddWarehouse(ctx context.Context, w *entity.Warehouse) error
	AddLocation(ctx context.Context, l *entity.StorageLocation) error
	AddProduct(ctx context.Context, p *entity.Product) error
	AddEmployee(ctx context.Context, e *entity.Employee) error
	SetRackCeiling(ctx context.Context, key entity.RackKey, ceiling decimal.Decimal) error
}
