package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.EmployeeRepository  = (*EmployeeRepo)(nil)
	_ repository.CatalogWriter       = (*CatalogWriter)(nil)
)

// ProductRepo lectura del catálogo de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, article_number, name, price, weight, dimension, created_at, updated_at`

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.ArticleNumber, &p.Name, &p.Price, &p.Weight, &p.Dimension,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// List todos los productos por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// WarehouseRepo lectura de bodegas.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get warehouse", err)
	}
	return &w, nil
}

// EmployeeRepo lectura de empleados.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	query := `SELECT id, first_name, last_name, login, role, is_active, created_at FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, id).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Login, &e.Role, &e.IsActive, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get employee", err)
	}
	return &e, nil
}

// CatalogWriter carga datos maestros. Con ID explícito hace upsert y adelanta la secuencia
// de la tabla para que las altas posteriores no choquen.
type CatalogWriter struct {
	q Querier
}

// NewCatalogWriter construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogWriter(q Querier) *CatalogWriter {
	return &CatalogWriter{q: q}
}

// AddWarehouse inserta o actualiza una bodega.
func (w *CatalogWriter) AddWarehouse(ctx context.Context, wh *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, address, created_at, updated_at)
		VALUES (COALESCE(NULLIF($1::bigint, 0), nextval(pg_get_serial_sequence('warehouses', 'id'))), $2, $3, now(), now())
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, updated_at = now()
		RETURNING id, created_at, updated_at`
	if err := w.q.QueryRow(ctx, query, wh.ID, wh.Name, wh.Address).Scan(&wh.ID, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
		return wrap("upsert warehouse", err)
	}
	return w.syncSequence(ctx, "warehouses")
}

// AddLocation inserta o actualiza una ubicación; el peso acumulado existente no se toca.
func (w *CatalogWriter) AddLocation(ctx context.Context, l *entity.StorageLocation) error {
	query := `
		INSERT INTO storage_locations (id, warehouse_id, building, room, rack, spot, current_weight, updated_at)
		VALUES (COALESCE(NULLIF($1::bigint, 0), nextval(pg_get_serial_sequence('storage_locations', 'id'))), $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			warehouse_id = EXCLUDED.warehouse_id, building = EXCLUDED.building, room = EXCLUDED.room,
			rack = EXCLUDED.rack, spot = EXCLUDED.spot, updated_at = now()
		RETURNING id, current_weight, updated_at`
	err := w.q.QueryRow(ctx, query, l.ID, l.WarehouseID, l.Building, l.Room, l.Rack, l.Spot, l.CurrentWeight).
		Scan(&l.ID, &l.CurrentWeight, &l.UpdatedAt)
	if err != nil {
		return wrap("upsert location", err)
	}
	return w.syncSequence(ctx, "storage_locations")
}

// AddProduct inserta o actualiza un producto.
func (w *CatalogWriter) AddProduct(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, article_number, name, price, weight, dimension, created_at, updated_at)
		VALUES (COALESCE(NULLIF($1::bigint, 0), nextval(pg_get_serial_sequence('products', 'id'))), $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			article_number = EXCLUDED.article_number, name = EXCLUDED.name, price = EXCLUDED.price,
			weight = EXCLUDED.weight, dimension = EXCLUDED.dimension, updated_at = now()
		RETURNING id, created_at, updated_at`
	err := w.q.QueryRow(ctx, query, p.ID, p.ArticleNumber, p.Name, p.Price, p.Weight, p.Dimension).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return wrap("upsert product", err)
	}
	return w.syncSequence(ctx, "products")
}

// AddEmployee inserta o actualiza un empleado.
func (w *CatalogWriter) AddEmployee(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, first_name, last_name, login, role, is_active, created_at)
		VALUES (COALESCE(NULLIF($1::bigint, 0), nextval(pg_get_serial_sequence('employees', 'id'))), $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, login = EXCLUDED.login,
			role = EXCLUDED.role, is_active = EXCLUDED.is_active
		RETURNING id, created_at`
	err := w.q.QueryRow(ctx, query, e.ID, e.FirstName, e.LastName, e.Login, e.Role, e.IsActive).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return wrap("upsert employee", err)
	}
	return w.syncSequence(ctx, "employees")
}

// SetRackCeiling fija el límite propio de un rack.
func (w *CatalogWriter) SetRackCeiling(ctx context.Context, key entity.RackKey, ceiling decimal.Decimal) error {
	query := `
		INSERT INTO rack_ceilings (warehouse_id, building, room, rack, ceiling)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (warehouse_id, building, room, rack) DO UPDATE SET ceiling = EXCLUDED.ceiling`
	if _, err := w.q.Exec(ctx, query, key.WarehouseID, key.Building, key.Room, key.Rack, ceiling); err != nil {
		return wrap("upsert rack ceiling", err)
	}
	return nil
}

func (w *CatalogWriter) syncSequence(ctx context.Context, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT MAX(id) FROM %[1]s), 1))`, table)
	if _, err := w.q.Exec(ctx, query); err != nil {
		return wrap("sync sequence "+table, err)
	}
	return nil
}
