// Package memory implementa los puertos de persistencia en memoria (pruebas y modo dev).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ documents.TxRunner       = (*Store)(nil)
	_ repository.CatalogWriter = (*Store)(nil)
)

type balanceKey struct {
	productID  int64
	locationID int64
}

type sequenceKey struct {
	prefix string
	day    string
}

// tables estado completo del almacén. Las filas se guardan por valor para que
// un clon superficial de los mapas sirva como snapshot.
type tables struct {
	nextID         map[string]int64
	warehouses     map[int64]entity.Warehouse
	locations      map[int64]entity.StorageLocation
	products       map[int64]entity.Product
	employees      map[int64]entity.Employee
	ceilings       map[entity.RackKey]decimal.Decimal
	documents      map[int64]entity.Document
	numbers        map[string]int64
	lines          map[int64]entity.DocumentLine
	assignments    map[int64]entity.LineAssignment // por línea
	balances       map[balanceKey]entity.ProductBalance
	movements      []entity.StockMovement
	inventoryLines []entity.InventoryLine
	reportLines    []entity.StorageReportLine
	sequences      map[sequenceKey]int
}

func newTables() *tables {
	return &tables{
		nextID:      make(map[string]int64),
		warehouses:  make(map[int64]entity.Warehouse),
		locations:   make(map[int64]entity.StorageLocation),
		products:    make(map[int64]entity.Product),
		employees:   make(map[int64]entity.Employee),
		ceilings:    make(map[entity.RackKey]decimal.Decimal),
		documents:   make(map[int64]entity.Document),
		numbers:     make(map[string]int64),
		lines:       make(map[int64]entity.DocumentLine),
		assignments: make(map[int64]entity.LineAssignment),
		balances:    make(map[balanceKey]entity.ProductBalance),
		sequences:   make(map[sequenceKey]int),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t *tables) clone() *tables {
	return &tables{
		nextID:         cloneMap(t.nextID),
		warehouses:     cloneMap(t.warehouses),
		locations:      cloneMap(t.locations),
		products:       cloneMap(t.products),
		employees:      cloneMap(t.employees),
		ceilings:       cloneMap(t.ceilings),
		documents:      cloneMap(t.documents),
		numbers:        cloneMap(t.numbers),
		lines:          cloneMap(t.lines),
		assignments:    cloneMap(t.assignments),
		balances:       cloneMap(t.balances),
		movements:      append([]entity.StockMovement(nil), t.movements...),
		inventoryLines: append([]entity.InventoryLine(nil), t.inventoryLines...),
		reportLines:    append([]entity.StorageReportLine(nil), t.reportLines...),
		sequences:      cloneMap(t.sequences),
	}
}

func (t *tables) id(table string, want int64) int64 {
	if want > 0 {
		if want > t.nextID[table] {
			t.nextID[table] = want
		}
		return want
	}
	t.nextID[table]++
	return t.nextID[table]
}

// Store almacén en memoria. Las unidades de trabajo se serializan con un único
// mutex, así que los bloqueos por rack y por producto quedan cubiertos.
type Store struct {
	mu   sync.Mutex
	data *tables
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// Run ejecuta fn con repositorios sobre el estado actual. Si fn falla o el
// contexto se cancela antes de terminar, el estado vuelve al snapshot previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.repos()); err != nil {
		s.data = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) repos() repository.Set {
	return repository.Set{
		Documents:   documentRepo{s},
		Lines:       lineRepo{s},
		Assignments: assignmentRepo{s},
		Balances:    balanceRepo{s},
		Movements:   movementRepo{s},
		Locations:   locationRepo{s},
		Products:    productRepo{s},
		Warehouses:  warehouseRepo{s},
		Employees:   employeeRepo{s},
		Sequences:   sequenceRepo{s},
		Snapshots:   snapshotRepo{s},
	}
}

// AddWarehouse implementa repository.CatalogWriter.
func (s *Store) AddWarehouse(_ context.Context, w *entity.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.data.id("warehouses", w.ID)
	stamp(&w.CreatedAt, &w.UpdatedAt)
	s.data.warehouses[w.ID] = *w
	return nil
}

// AddLocation implementa repository.CatalogWriter.
func (s *Store) AddLocation(_ context.Context, l *entity.StorageLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.data.id("locations", l.ID)
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = time.Now().UTC()
	}
	s.data.locations[l.ID] = *l
	return nil
}

// AddProduct implementa repository.CatalogWriter.
func (s *Store) AddProduct(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.data.id("products", p.ID)
	stamp(&p.CreatedAt, &p.UpdatedAt)
	s.data.products[p.ID] = *p
	return nil
}

// AddEmployee implementa repository.CatalogWriter.
func (s *Store) AddEmployee(_ context.Context, e *entity.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.data.id("employees", e.ID)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.data.employees[e.ID] = *e
	return nil
}

// SetRackCeiling implementa repository.CatalogWriter.
func (s *Store) SetRackCeiling(_ context.Context, key entity.RackKey, ceiling decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ceilings[key] = ceiling
	return nil
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}
