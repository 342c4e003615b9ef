package documents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ─── Empleados ──────────────────────────────────────────────────────────────

func TestEmployee_IsActive(t *testing.T) {
	f := newFixture(t)
	uc := documents.NewEmployeeUseCase(f.store)

	active, err := uc.IsActive(f.ctx, storekeeperID)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = uc.IsActive(f.ctx, inactiveID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = uc.IsActive(f.ctx, 999)
	require.NoError(t, err)
	assert.False(t, active, "un empleado desconocido no está activo")
}

func TestEmployee_Get(t *testing.T) {
	f := newFixture(t)
	uc := documents.NewEmployeeUseCase(f.store)

	e, err := uc.Get(f.ctx, directorID)
	require.NoError(t, err)
	assert.Equal(t, "Luis Mora", e.FullName)
	assert.Equal(t, entity.RoleDirector, e.Role)

	_, err = uc.Get(f.ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ─── Carga de catálogo ──────────────────────────────────────────────────────

func sampleSeed() dto.CatalogSeed {
	return dto.CatalogSeed{
		Warehouses: []dto.WarehouseSeed{{ID: 1, Name: "Central", Address: "Calle 1"}},
		Locations: []dto.LocationSeed{
			{ID: 10, WarehouseID: 1, Building: "A", Room: "1", Rack: "R1", Spot: "1"},
			{ID: 11, WarehouseID: 1, Building: "A", Room: "1", Rack: "R1", Spot: "2"},
		},
		Products: []dto.ProductSeed{
			{ID: 5, ArticleNumber: "TOR-001", Name: "Tornillo", Price: "0.25", Weight: "0.01"},
		},
		Employees: []dto.EmployeeSeed{
			{ID: 1, FirstName: "Ana", LastName: "Ríos", Login: "arios", Role: entity.RoleStorekeeper},
			{ID: 2, FirstName: "Eva", LastName: "Paz", Login: "epaz", Role: entity.RoleDirector, Inactive: true},
		},
		RackCeilings: []dto.RackCeilingSeed{
			{WarehouseID: 1, Building: "A", Room: "1", Rack: "R1", Ceiling: "120"},
		},
	}
}

func TestCatalog_LoadEscribeTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := documents.NewCatalogUseCase(store)

	res, err := uc.Load(ctx, sampleSeed())
	require.NoError(t, err)
	assert.Equal(t, dto.CatalogSeedResult{Warehouses: 1, Locations: 2, Products: 1, Employees: 2, RackCeilings: 1}, res)

	require.NoError(t, store.Run(ctx, func(r repository.Set) error {
		p, err := r.Products.GetByID(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, p.Weight.Equal(dec("0.01")))

		c, err := r.Locations.RackCeiling(ctx, entity.RackKey{WarehouseID: 1, Building: "A", Room: "1", Rack: "R1"})
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.True(t, c.Equal(dec("120")))

		e, err := r.Employees.GetByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.False(t, e.IsActive)
		return nil
	}))
}

func TestCatalog_LoadValidaAntesDeEscribir(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := documents.NewCatalogUseCase(store)

	seed := sampleSeed()
	seed.Employees[1].Role = "vendedor"

	_, err := uc.Load(ctx, seed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	require.NoError(t, store.Run(ctx, func(r repository.Set) error {
		w, err := r.Warehouses.GetByID(ctx, 1)
		assert.Nil(t, w, "no se escribe nada si la semilla es inválida")
		return err
	}))
}

func TestCatalog_LoadRechazaPesoNegativo(t *testing.T) {
	seed := sampleSeed()
	seed.Products[0].Weight = "-1"

	_, err := documents.NewCatalogUseCase(memory.NewStore()).Load(context.Background(), seed)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCatalog_LoadRechazaPesoConMasDeTresDecimales(t *testing.T) {
	seed := sampleSeed()
	seed.Products[0].Weight = "0.0005"

	_, err := documents.NewCatalogUseCase(memory.NewStore()).Load(context.Background(), seed)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
