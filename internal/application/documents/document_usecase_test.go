package documents_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ─── Numeración ─────────────────────────────────────────────────────────────

func TestCreate_NumeracionConsecutivaPorPrefijoYDia(t *testing.T) {
	f := newFixture(t)

	for i := 1; i <= 5; i++ {
		doc := f.create(t, entity.KindGoodsReceipt)
		assert.Equal(t, fmt.Sprintf("GR-20240315-%03d", i), doc.Number)
		assert.Equal(t, string(entity.StatusNew), doc.Status)
	}
	assert.Equal(t, "GI-20240315-001", f.create(t, entity.KindGoodsIssue).Number)

	f.now = f.now.Add(24 * time.Hour)
	assert.Equal(t, "GR-20240316-001", f.create(t, entity.KindGoodsReceipt).Number)
}

func TestCreate_ConcurrenteSinHuecosNiRepetidos(t *testing.T) {
	f := newFixture(t)
	const n = 20

	var wg sync.WaitGroup
	numbers := make(chan string, n)
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := f.docs.Create(context.Background(), storekeeperID, dto.CreateDocumentRequest{Kind: string(entity.KindGoodsIssue)})
			if err != nil {
				errCh <- err
				return
			}
			numbers <- doc.Number
		}()
	}
	wg.Wait()
	close(numbers)
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
	var got []string
	for num := range numbers {
		got = append(got, num)
	}
	sort.Strings(got)
	require.Len(t, got, n)
	for i, num := range got {
		assert.Equal(t, fmt.Sprintf("GI-20240315-%03d", i+1), num)
	}
}

// conflictingTx falla con ErrConflict las primeras veces, después de ejecutar fn.
type conflictingTx struct {
	inner documents.TxRunner
	fails int
}

func (c *conflictingTx) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	return c.inner.Run(ctx, func(repos repository.Set) error {
		if err := fn(repos); err != nil {
			return err
		}
		if c.fails > 0 {
			c.fails--
			return fmt.Errorf("insertar documento: %w", domain.ErrConflict)
		}
		return nil
	})
}

func TestCreate_ReintentaConflictos(t *testing.T) {
	f := newFixture(t)
	metrics := &recordingMetrics{}
	tx := &conflictingTx{inner: f.store, fails: 2}
	uc := documents.NewDocumentUseCase(tx, documents.DefaultConfig(), logger.Nop(),
		documents.WithClock(func() time.Time { return f.now }),
		documents.WithMetrics(metrics))

	doc, err := uc.Create(f.ctx, storekeeperID, dto.CreateDocumentRequest{Kind: string(entity.KindGoodsReceipt)})
	require.NoError(t, err)
	assert.Equal(t, "GR-20240315-001", doc.Number, "los intentos fallidos no consumen consecutivos")
	assert.Equal(t, 2, metrics.retries)
}

func TestCreate_ConflictoAgotaReintentos(t *testing.T) {
	f := newFixture(t)
	cfg := documents.DefaultConfig()
	cfg.NumberRetries = 1
	uc := documents.NewDocumentUseCase(&conflictingTx{inner: f.store, fails: 5}, cfg, logger.Nop())

	_, err := uc.Create(f.ctx, storekeeperID, dto.CreateDocumentRequest{Kind: string(entity.KindGoodsReceipt)})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)

	_, err := f.docs.Create(f.ctx, storekeeperID, dto.CreateDocumentRequest{Kind: "transferencia"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.Create(f.ctx, 99, dto.CreateDocumentRequest{Kind: string(entity.KindGoodsReceipt)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.Create(f.ctx, inactiveID, dto.CreateDocumentRequest{Kind: string(entity.KindGoodsReceipt)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, "GR-20240315-001", f.create(t, entity.KindGoodsReceipt).Number, "los rechazos no consumen números")
}

func TestCreate_FechasDeEntregaYVenta(t *testing.T) {
	f := newFixture(t)
	delivery := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	gr, err := f.docs.Create(f.ctx, storekeeperID, dto.CreateDocumentRequest{Kind: string(entity.KindGoodsReceipt), DeliveryDate: &delivery})
	require.NoError(t, err)
	require.NotNil(t, gr.DeliveryDate)
	assert.True(t, gr.DeliveryDate.Equal(delivery))
	assert.Nil(t, gr.SaleDate)
	assert.Equal(t, "Ana Ríos", gr.AuthorName)

	gi := f.create(t, entity.KindGoodsIssue)
	require.NotNil(t, gi.SaleDate)
	assert.True(t, gi.SaleDate.Equal(f.now))
}

// ─── Entradas ───────────────────────────────────────────────────────────────

func TestReceipt_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)

	screws := f.addLine(t, doc.ID, screwID, "10")
	paint := f.addLine(t, doc.ID, paintID, "5")
	assert.Equal(t, string(entity.StatusLinesOpen), f.status(t, doc.ID))

	require.NoError(t, f.docs.AssignLocations(f.ctx, doc.ID, []dto.LocationAssignment{
		{LineID: screws, LocationID: locR1S1},
		{LineID: paint, LocationID: locR1S2},
	}))
	assert.Equal(t, string(entity.StatusLocated), f.status(t, doc.ID))
	assert.True(t, f.weight(t, locR1S1).IsZero(), "el peso se aplica al cerrar")

	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))

	got, err := f.docs.Get(f.ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusClosed), got.Status)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "A-1-R1-1", got.Lines[0].LocationCode)

	assert.True(t, f.balance(t, screwID, locR1S1).Equal(dec("10")))
	assert.True(t, f.balance(t, paintID, locR1S2).Equal(dec("5")))
	assert.True(t, f.weight(t, locR1S1).Equal(dec("10")))
	assert.True(t, f.weight(t, locR1S2).Equal(dec("10")))

	moves := f.movements(t, doc.ID)
	require.Len(t, moves, 2)
	assert.Equal(t, moves[0].TransactionID, moves[1].TransactionID)
	assert.Contains(t, f.metrics.transitions, "goods_receipt:closed:ok")
}

func TestReceipt_ProductoRepetido(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	f.addLine(t, doc.ID, screwID, "10")

	_, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("1")})
	var dup *domain.DuplicateProductError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, screwID, dup.ProductID)

	got, err := f.docs.Get(f.ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].Quantity.Equal(dec("10")))
}

func TestReceipt_LineasInvalidas(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)

	_, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: 404, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.AddLine(f.ctx, 404, dto.AddLineRequest{ProductID: screwID, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("0.0004")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "las cantidades se guardan con tres decimales")

	assert.Equal(t, string(entity.StatusNew), f.status(t, doc.ID))
	f.addLine(t, doc.ID, screwID, "1.2500")
}

func TestReceipt_NoAceptaLineasDespuesDeUbicar(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, screwID, "1")
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locR1S1))

	_, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: paintID, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceipt_CierreConLineasSinUbicacion(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	screws := f.addLine(t, doc.ID, screwID, "10")
	paint := f.addLine(t, doc.ID, paintID, "5")
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, screws, locR1S1))

	err := f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed)
	var incomplete *domain.IncompleteAssignmentError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int64{paint}, incomplete.LineIDs)

	assert.Equal(t, string(entity.StatusLocated), f.status(t, doc.ID))
	assert.True(t, f.total(t, screwID).IsZero())
	assert.True(t, f.weight(t, locR1S1).IsZero())
	assert.Contains(t, f.metrics.transitions, "goods_receipt:closed:incomplete_assignment")
}

func TestReceipt_AsignarSinLineas(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)

	err := f.docs.AssignLocation(f.ctx, doc.ID, 1, locR1S1)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una entrada en new no tiene líneas que ubicar")

	err = f.docs.AssignLocations(f.ctx, doc.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceipt_AsignacionesInvalidas(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, screwID, "1")

	assert.ErrorIs(t, f.docs.AssignLocation(f.ctx, doc.ID, line+100, locR1S1), domain.ErrNotFound)
	assert.ErrorIs(t, f.docs.AssignLocation(f.ctx, doc.ID, line, 404), domain.ErrNotFound)
	assert.ErrorIs(t, f.docs.AssignLocations(f.ctx, doc.ID, []dto.LocationAssignment{
		{LineID: line, LocationID: locR1S1},
		{LineID: line, LocationID: locR1S2},
	}), domain.ErrInvalidInput)

	issue := f.create(t, entity.KindGoodsIssue)
	assert.ErrorIs(t, f.docs.AssignLocation(f.ctx, issue.ID, line, locR1S1), domain.ErrInvalidState)
}

func TestReceipt_CapacidadDelRack(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, cementID, "7") // 350 > 300

	err := f.docs.AssignLocation(f.ctx, doc.ID, line, locR1S1)
	var capErr *domain.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Ceiling.Equal(dec("300")))
	assert.True(t, capErr.Added.Equal(dec("350")))
	assert.Equal(t, string(entity.StatusLinesOpen), f.status(t, doc.ID))
}

func TestReceipt_CapacidadAcumuladaEnLote(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	cement := f.addLine(t, doc.ID, cementID, "5") // 250
	paint := f.addLine(t, doc.ID, paintID, "30")  // 60

	err := f.docs.AssignLocations(f.ctx, doc.ID, []dto.LocationAssignment{
		{LineID: cement, LocationID: locR1S1},
		{LineID: paint, LocationID: locR1S3},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientCapacity, "las ubicaciones comparten el rack R1")

	require.NoError(t, f.docs.AssignLocations(f.ctx, doc.ID, []dto.LocationAssignment{
		{LineID: cement, LocationID: locR1S1},
		{LineID: paint, LocationID: locR2S1},
	}))
}

func TestReceipt_CapacidadAcumuladaEntreLlamadas(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	cement := f.addLine(t, doc.ID, cementID, "5") // 250
	paint := f.addLine(t, doc.ID, paintID, "30")  // 60

	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, cement, locR1S1))
	err := f.docs.AssignLocation(f.ctx, doc.ID, paint, locR1S3)
	var capErr *domain.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr, "el cemento ya ubicado ocupa 250 del rack R1")
	assert.True(t, capErr.Current.Equal(dec("250")))
	assert.True(t, capErr.Added.Equal(dec("60")))

	// Reubicar una línea dentro del mismo rack no cuenta su peso dos veces.
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, paint, locR2S1))
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, cement, locR1S2))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))
	assert.True(t, f.weight(t, locR1S2).Equal(dec("250")))
	assert.True(t, f.weight(t, locR1S1).IsZero())
}

func TestReceipt_LimitePropioDelRack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetRackCeiling(f.ctx, r2Key, dec("100")))
	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, cementID, "3") // 150

	assert.ErrorIs(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locR2S1), domain.ErrInsufficientCapacity)
	assert.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locR1S1))
}

func TestReceipt_CapacidadRevalidadaAlCerrar(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, entity.KindGoodsReceipt)
	second := f.create(t, entity.KindGoodsReceipt)
	l1 := f.addLine(t, first.ID, cementID, "5")
	l2 := f.addLine(t, second.ID, cementID, "5")
	require.NoError(t, f.docs.AssignLocation(f.ctx, first.ID, l1, locR1S1))
	require.NoError(t, f.docs.AssignLocation(f.ctx, second.ID, l2, locR1S2))

	require.NoError(t, f.docs.Transition(f.ctx, first.ID, entity.StatusClosed))
	err := f.docs.Transition(f.ctx, second.ID, entity.StatusClosed)
	require.ErrorIs(t, err, domain.ErrInsufficientCapacity)

	assert.Equal(t, string(entity.StatusLocated), f.status(t, second.ID))
	assert.True(t, f.total(t, cementID).Equal(dec("5")))
	assert.True(t, f.weight(t, locR1S1).Equal(dec("250")))
	assert.True(t, f.weight(t, locR1S2).IsZero())
	assert.Empty(t, f.movements(t, second.ID))
}

func TestReceipt_ReasignarReemplazaUbicacion(t *testing.T) {
	f := newFixture(t)
	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, screwID, "4")
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locR1S1))
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locR2S1))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))

	assert.True(t, f.balance(t, screwID, locR1S1).IsZero())
	assert.True(t, f.balance(t, screwID, locR2S1).Equal(dec("4")))
}

// ─── Salidas ────────────────────────────────────────────────────────────────

func TestIssue_DescuentaDesdeElSaldoMayor(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "50")
	f.seedBalance(t, screwID, locR1S2, "30")
	f.seedBalance(t, screwID, locR1S3, "10")

	doc := f.create(t, entity.KindGoodsIssue)
	f.addLine(t, doc.ID, screwID, "40")
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusIssued))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))

	assert.True(t, f.balance(t, screwID, locR1S1).Equal(dec("10")))
	assert.True(t, f.balance(t, screwID, locR1S2).Equal(dec("30")))
	assert.True(t, f.balance(t, screwID, locR1S3).Equal(dec("10")))
	assert.True(t, f.total(t, screwID).Equal(dec("50")))

	moves := f.movements(t, doc.ID)
	require.Len(t, moves, 1)
	assert.True(t, moves[0].Quantity.Equal(dec("-40")))
	assert.Equal(t, locR1S1, moves[0].StorageLocationID)
}

func TestIssue_DescuentoEnVariasUbicaciones(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "50")
	f.seedBalance(t, screwID, locR1S2, "30")
	f.seedBalance(t, screwID, locR1S3, "10")

	doc := f.create(t, entity.KindGoodsIssue)
	f.addLine(t, doc.ID, screwID, "85")
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusIssued))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))

	assert.True(t, f.balance(t, screwID, locR1S1).IsZero())
	assert.True(t, f.balance(t, screwID, locR1S2).IsZero())
	assert.True(t, f.balance(t, screwID, locR1S3).Equal(dec("5")))
	assert.Len(t, f.movements(t, doc.ID), 3)
}

func TestIssue_StockInsuficienteAlAgregar(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "90")
	doc := f.create(t, entity.KindGoodsIssue)

	_, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("100")})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(dec("90")))
	assert.True(t, stockErr.Shortfall().Equal(dec("10")))
	assert.Equal(t, string(entity.StatusNew), f.status(t, doc.ID))
}

func TestIssue_StockInsuficienteAlCerrarNoModificaNada(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "60")
	f.seedBalance(t, screwID, locR1S2, "30")
	f.seedBalance(t, paintID, locR2S1, "8")

	doc := f.create(t, entity.KindGoodsIssue)
	f.addLine(t, doc.ID, paintID, "8")
	f.addLine(t, doc.ID, screwID, "90")
	res, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("10")})
	require.NoError(t, err)
	assert.True(t, res.Merged)
	assert.True(t, res.Quantity.Equal(dec("100")))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusIssued))

	err = f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, string(entity.StatusIssued), f.status(t, doc.ID))
	assert.True(t, f.balance(t, paintID, locR2S1).Equal(dec("8")), "la línea que sí alcanzaba tampoco se aplica")
	assert.True(t, f.balance(t, screwID, locR1S1).Equal(dec("60")))
	assert.True(t, f.balance(t, screwID, locR1S2).Equal(dec("30")))
	assert.Empty(t, f.movements(t, doc.ID))
}

func TestIssue_MismoProductoSeAcumula(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "20")
	doc := f.create(t, entity.KindGoodsIssue)

	first := f.addLine(t, doc.ID, screwID, "5")
	res, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("3")})
	require.NoError(t, err)
	assert.Equal(t, first, res.LineID)
	assert.True(t, res.Merged)

	got, err := f.docs.Get(f.ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].Quantity.Equal(dec("8")))
}

func TestIssue_EncargadoDePicking(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "20")
	doc := f.create(t, entity.KindGoodsIssue)

	inactive := inactiveID
	_, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("1"), PickerID: &inactive})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	picker := directorID
	_, err = f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("1"), PickerID: &picker})
	require.NoError(t, err)
	got, err := f.docs.Get(f.ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Lines[0].PickerID)
	assert.Equal(t, directorID, *got.Lines[0].PickerID)
}

func TestIssue_EmitidaNoAceptaLineas(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "20")
	doc := f.create(t, entity.KindGoodsIssue)
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusIssued), "new -> issued está permitido")

	_, err := f.docs.AddLine(f.ctx, doc.ID, dto.AddLineRequest{ProductID: screwID, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))
	assert.True(t, f.total(t, screwID).Equal(dec("20")))
}

func TestIssue_CierresConcurrentesNoDejanSaldoNegativo(t *testing.T) {
	f := newFixture(t)
	f.seedBalance(t, screwID, locR1S1, "10")

	ids := make([]int64, 2)
	for i := range ids {
		doc := f.create(t, entity.KindGoodsIssue)
		f.addLine(t, doc.ID, screwID, "6")
		require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusIssued))
		ids[i] = doc.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			errs[i] = f.docs.Transition(context.Background(), id, entity.StatusClosed)
		}(i, id)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)
	assert.True(t, f.total(t, screwID).Equal(dec("4")))
}

// ─── Transiciones ───────────────────────────────────────────────────────────

func TestTransition_CerradoEsTerminal(t *testing.T) {
	f := newFixture(t)
	id := f.receive(t, screwID, locR1S1, "3")

	err := f.docs.Transition(f.ctx, id, entity.StatusClosed)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "closed", stateErr.From)
	assert.True(t, f.total(t, screwID).Equal(dec("3")), "un segundo cierre no duplica saldos")
}

func TestTransition_SaltosNoPermitidos(t *testing.T) {
	f := newFixture(t)
	gr := f.create(t, entity.KindGoodsReceipt)
	assert.ErrorIs(t, f.docs.Transition(f.ctx, gr.ID, entity.StatusClosed), domain.ErrInvalidState)
	assert.ErrorIs(t, f.docs.Transition(f.ctx, gr.ID, entity.StatusIssued), domain.ErrInvalidState)

	gi := f.create(t, entity.KindGoodsIssue)
	assert.ErrorIs(t, f.docs.Transition(f.ctx, gi.ID, entity.StatusClosed), domain.ErrInvalidState)
	assert.ErrorIs(t, f.docs.Transition(f.ctx, gi.ID, entity.StatusLocated), domain.ErrInvalidState)

	assert.ErrorIs(t, f.docs.Transition(f.ctx, 404, entity.StatusClosed), domain.ErrNotFound)
	assert.Contains(t, f.metrics.transitions, ":closed:not_found")
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	f := newFixture(t)
	gr := f.create(t, entity.KindGoodsReceipt)

	err := f.docs.Transition(f.ctx, gr.ID, entity.DocumentStatus("archived"))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "estado", nf.Entity)
	assert.Equal(t, string(entity.StatusNew), f.status(t, gr.ID))
}

func TestReceipt_PesoIgualAlLimiteSePermite(t *testing.T) {
	f := newFixture(t)
	f.receive(t, cementID, locR1S1, "5") // 250 en R1, límite 300

	doc := f.create(t, entity.KindGoodsReceipt)
	line := f.addLine(t, doc.ID, cementID, "1")
	require.NoError(t, f.docs.AssignLocation(f.ctx, doc.ID, line, locR1S2))
	require.NoError(t, f.docs.Transition(f.ctx, doc.ID, entity.StatusClosed))
	assert.True(t, f.weight(t, locR1S2).Equal(dec("50")))
}

// ─── Conservación ───────────────────────────────────────────────────────────

func TestLibro_ConservacionEntreEntradasYSalidas(t *testing.T) {
	f := newFixture(t)
	f.receive(t, screwID, locR1S1, "40")
	f.receive(t, screwID, locR1S2, "25")
	f.receive(t, screwID, locR2S1, "15")

	gi := f.create(t, entity.KindGoodsIssue)
	f.addLine(t, gi.ID, screwID, "33")
	require.NoError(t, f.docs.Transition(f.ctx, gi.ID, entity.StatusIssued))
	require.NoError(t, f.docs.Transition(f.ctx, gi.ID, entity.StatusClosed))

	assert.True(t, f.total(t, screwID).Equal(dec("47")), "40 + 25 + 15 - 33")
	for _, loc := range []int64{locR1S1, locR1S2, locR2S1} {
		assert.False(t, f.balance(t, screwID, loc).IsNegative())
	}
}
