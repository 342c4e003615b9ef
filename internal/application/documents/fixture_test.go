package documents_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// IDs del catálogo de prueba.
const (
	storekeeperID int64 = 1
	directorID    int64 = 2
	inactiveID    int64 = 3

	screwID  int64 = 1 // peso 1
	cementID int64 = 2 // peso 50
	paintID  int64 = 3 // peso 2

	locR1S1 int64 = 1
	locR1S2 int64 = 2
	locR1S3 int64 = 3
	locR2S1 int64 = 4
)

var (
	r1Key = entity.RackKey{WarehouseID: 1, Building: "A", Room: "1", Rack: "R1"}
	r2Key = entity.RackKey{WarehouseID: 1, Building: "A", Room: "1", Rack: "R2"}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ctx     context.Context
	store   *memory.Store
	now     time.Time
	metrics *recordingMetrics
	docs    *documents.DocumentUseCase
	reports *documents.ReportUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.AddWarehouse(ctx, &entity.Warehouse{ID: 1, Name: "Central"}))
	for _, l := range []entity.StorageLocation{
		{ID: locR1S1, WarehouseID: 1, Building: "A", Room: "1", Rack: "R1", Spot: "1"},
		{ID: locR1S2, WarehouseID: 1, Building: "A", Room: "1", Rack: "R1", Spot: "2"},
		{ID: locR1S3, WarehouseID: 1, Building: "A", Room: "1", Rack: "R1", Spot: "3"},
		{ID: locR2S1, WarehouseID: 1, Building: "A", Room: "1", Rack: "R2", Spot: "1"},
	} {
		l := l
		require.NoError(t, store.AddLocation(ctx, &l))
	}
	for _, p := range []entity.Product{
		{ID: screwID, ArticleNumber: "TOR-001", Name: "Tornillo", Weight: dec("1")},
		{ID: cementID, ArticleNumber: "CEM-050", Name: "Cemento", Weight: dec("50")},
		{ID: paintID, ArticleNumber: "PIN-002", Name: "Pintura", Weight: dec("2")},
	} {
		p := p
		require.NoError(t, store.AddProduct(ctx, &p))
	}
	for _, e := range []entity.Employee{
		{ID: storekeeperID, FirstName: "Ana", LastName: "Ríos", Role: entity.RoleStorekeeper, IsActive: true},
		{ID: directorID, FirstName: "Luis", LastName: "Mora", Role: entity.RoleDirector, IsActive: true},
		{ID: inactiveID, FirstName: "Eva", LastName: "Paz", Role: entity.RoleStorekeeper},
	} {
		e := e
		require.NoError(t, store.AddEmployee(ctx, &e))
	}

	f := &fixture{
		ctx:     ctx,
		store:   store,
		now:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		metrics: &recordingMetrics{},
	}
	f.docs = documents.NewDocumentUseCase(store, documents.DefaultConfig(), logger.Nop(),
		documents.WithClock(func() time.Time { return f.now }),
		documents.WithMetrics(f.metrics))
	f.reports = documents.NewReportUseCase(store, documents.DefaultConfig())
	return f
}

func (f *fixture) seedBalance(t *testing.T, productID, locationID int64, qty string) {
	t.Helper()
	require.NoError(t, f.store.Run(f.ctx, func(r repository.Set) error {
		return r.Balances.Increment(f.ctx, productID, locationID, dec(qty), f.now)
	}))
}

func (f *fixture) balance(t *testing.T, productID, locationID int64) decimal.Decimal {
	t.Helper()
	var out decimal.Decimal
	require.NoError(t, f.store.Run(f.ctx, func(r repository.Set) error {
		b, err := r.Balances.Get(f.ctx, productID, locationID)
		if b != nil {
			out = b.Quantity
		}
		return err
	}))
	return out
}

func (f *fixture) total(t *testing.T, productID int64) decimal.Decimal {
	t.Helper()
	var out decimal.Decimal
	require.NoError(t, f.store.Run(f.ctx, func(r repository.Set) error {
		var err error
		out, err = r.Balances.TotalByProduct(f.ctx, productID)
		return err
	}))
	return out
}

func (f *fixture) weight(t *testing.T, locationID int64) decimal.Decimal {
	t.Helper()
	var out decimal.Decimal
	require.NoError(t, f.store.Run(f.ctx, func(r repository.Set) error {
		l, err := r.Locations.GetByID(f.ctx, locationID)
		if l != nil {
			out = l.CurrentWeight
		}
		return err
	}))
	return out
}

func (f *fixture) movements(t *testing.T, documentID int64) []*entity.StockMovement {
	t.Helper()
	var out []*entity.StockMovement
	require.NoError(t, f.store.Run(f.ctx, func(r repository.Set) error {
		var err error
		out, err = r.Movements.ListByDocument(f.ctx, documentID)
		return err
	}))
	return out
}

func (f *fixture) create(t *testing.T, kind entity.DocumentKind) *dto.DocumentResponse {
	t.Helper()
	doc, err := f.docs.Create(f.ctx, storekeeperID, dto.CreateDocumentRequest{Kind: string(kind)})
	require.NoError(t, err)
	return doc
}

func (f *fixture) addLine(t *testing.T, documentID, productID int64, qty string) int64 {
	t.Helper()
	res, err := f.docs.AddLine(f.ctx, documentID, dto.AddLineRequest{ProductID: productID, Quantity: dec(qty)})
	require.NoError(t, err)
	return res.LineID
}

func (f *fixture) status(t *testing.T, documentID int64) string {
	t.Helper()
	doc, err := f.docs.Get(f.ctx, documentID)
	require.NoError(t, err)
	return doc.Status
}

// receive registra y cierra una entrada de un solo producto.
func (f *fixture) receive(t *testing.T, productID, locationID int64, qty string) int64 {
	t.Helper()
	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, productID, qty)
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locationID))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))
	return doc.ID
}

type recordingMetrics struct {
	mu          sync.Mutex
	created     []string
	transitions []string
	retries     int
}

func (m *recordingMetrics) DocumentCreated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, kind)
}

func (m *recordingMetrics) TransitionApplied(kind, target, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, kind+":"+target+":"+outcome)
}

func (m *recordingMetrics) ConflictRetried(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries++
}
