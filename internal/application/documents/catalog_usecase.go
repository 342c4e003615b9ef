package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// EmployeeUseCase consultas de identidad del empleado autenticado.
type EmployeeUseCase struct {
	tx TxRunner
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(tx TxRunner) *EmployeeUseCase {
	return &EmployeeUseCase{tx: tx}
}

// IsActive indica si el empleado existe y está activo. Un empleado
// desconocido no es un error: responde false.
func (uc *EmployeeUseCase) IsActive(ctx context.Context, employeeID int64) (bool, error) {
	var active bool
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		e, err := repos.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		active = e != nil && e.IsActive
		return nil
	})
	return active, err
}

// Get devuelve el empleado por ID.
func (uc *EmployeeUseCase) Get(ctx context.Context, employeeID int64) (*dto.EmployeeResponse, error) {
	var out *dto.EmployeeResponse
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		e, err := repos.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.NewNotFound("empleado", employeeID)
		}
		out = &dto.EmployeeResponse{
			ID:       e.ID,
			FullName: e.FullName(),
			Login:    e.Login,
			Role:     e.Role,
			IsActive: e.IsActive,
		}
		return nil
	})
	return out, err
}

// CatalogUseCase carga de datos maestros.
type CatalogUseCase struct {
	writer repository.CatalogWriter
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(writer repository.CatalogWriter) *CatalogUseCase {
	return &CatalogUseCase{writer: writer}
}

// Load valida y escribe el catálogo completo en orden de dependencias:
// bodegas, ubicaciones, límites de rack, productos y empleados.
// La validación ocurre antes de escribir la primera fila.
func (uc *CatalogUseCase) Load(ctx context.Context, seed dto.CatalogSeed) (dto.CatalogSeedResult, error) {
	var res dto.CatalogSeedResult
	products, err := productsFromSeed(seed.Products)
	if err != nil {
		return res, err
	}
	ceilings, err := ceilingsFromSeed(seed.RackCeilings)
	if err != nil {
		return res, err
	}
	employees, err := employeesFromSeed(seed.Employees)
	if err != nil {
		return res, err
	}

	for _, w := range seed.Warehouses {
		if strings.TrimSpace(w.Name) == "" {
			return res, fmt.Errorf("bodega %d sin nombre: %w", w.ID, domain.ErrInvalidInput)
		}
		if err := uc.writer.AddWarehouse(ctx, &entity.Warehouse{ID: w.ID, Name: w.Name, Address: w.Address}); err != nil {
			return res, fmt.Errorf("bodega %q: %w", w.Name, err)
		}
		res.Warehouses++
	}
	for _, l := range seed.Locations {
		loc := &entity.StorageLocation{
			ID:          l.ID,
			WarehouseID: l.WarehouseID,
			Building:    l.Building,
			Room:        l.Room,
			Rack:        l.Rack,
			Spot:        l.Spot,
		}
		if loc.WarehouseID <= 0 || loc.Rack == "" {
			return res, fmt.Errorf("ubicación %s: %w", loc.Code(), domain.ErrInvalidInput)
		}
		if err := uc.writer.AddLocation(ctx, loc); err != nil {
			return res, fmt.Errorf("ubicación %s: %w", loc.Code(), err)
		}
		res.Locations++
	}
	for _, c := range ceilings {
		if err := uc.writer.SetRackCeiling(ctx, c.key, c.ceiling); err != nil {
			return res, fmt.Errorf("límite rack %s: %w", c.key, err)
		}
		res.RackCeilings++
	}
	for _, p := range products {
		if err := uc.writer.AddProduct(ctx, p); err != nil {
			return res, fmt.Errorf("producto %s: %w", p.ArticleNumber, err)
		}
		res.Products++
	}
	for _, e := range employees {
		if err := uc.writer.AddEmployee(ctx, e); err != nil {
			return res, fmt.Errorf("empleado %s: %w", e.Login, err)
		}
		res.Employees++
	}
	return res, nil
}

func productsFromSeed(in []dto.ProductSeed) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(in))
	for _, p := range in {
		price, err := dto.ParseDecimalOrZero(p.Price)
		if err != nil {
			return nil, fmt.Errorf("producto %s: precio: %w", p.ArticleNumber, domain.ErrInvalidInput)
		}
		weight, err := dto.ParseDecimalOrZero(p.Weight)
		if err != nil || weight.IsNegative() || !entity.FitsScale(weight) {
			return nil, fmt.Errorf("producto %s: peso: %w", p.ArticleNumber, domain.ErrInvalidInput)
		}
		dim, err := dto.ParseDecimalOrZero(p.Dimension)
		if err != nil {
			return nil, fmt.Errorf("producto %s: dimensión: %w", p.ArticleNumber, domain.ErrInvalidInput)
		}
		if p.ArticleNumber == "" || p.Name == "" {
			return nil, fmt.Errorf("producto %d sin número de artículo o nombre: %w", p.ID, domain.ErrInvalidInput)
		}
		out = append(out, &entity.Product{
			ID:            p.ID,
			ArticleNumber: p.ArticleNumber,
			Name:          p.Name,
			Price:         price,
			Weight:        weight,
			Dimension:     dim,
		})
	}
	return out, nil
}

type rackCeiling struct {
	key     entity.RackKey
	ceiling decimal.Decimal
}

func ceilingsFromSeed(in []dto.RackCeilingSeed) ([]rackCeiling, error) {
	out := make([]rackCeiling, 0, len(in))
	for _, c := range in {
		key := entity.RackKey{WarehouseID: c.WarehouseID, Building: c.Building, Room: c.Room, Rack: c.Rack}
		ceiling, err := dto.ParseDecimalOrZero(c.Ceiling)
		if err != nil || !ceiling.IsPositive() || !entity.FitsScale(ceiling) {
			return nil, fmt.Errorf("límite rack %s: %w", key, domain.ErrInvalidInput)
		}
		out = append(out, rackCeiling{key: key, ceiling: ceiling})
	}
	return out, nil
}

func employeesFromSeed(in []dto.EmployeeSeed) ([]*entity.Employee, error) {
	out := make([]*entity.Employee, 0, len(in))
	for _, e := range in {
		switch e.Role {
		case entity.RoleDirector, entity.RoleStorekeeper:
		default:
			return nil, fmt.Errorf("empleado %s: rol %q: %w", e.Login, e.Role, domain.ErrInvalidInput)
		}
		out = append(out, &entity.Employee{
			ID:        e.ID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Login:     e.Login,
			Role:      e.Role,
			IsActive:  !e.Inactive,
		})
	}
	return out, nil
}
