package documents

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// DocumentUseCase motor de documentos: creación, líneas, ubicaciones y transiciones.
// Cada operación corre en una sola unidad de trabajo y no deja cambios si falla.
type DocumentUseCase struct {
	tx      TxRunner
	cfg     Config
	log     *logger.Logger
	metrics Metrics
	clock   Clock
	effects map[entity.DocumentKind]kindEffects
}

// Option ajusta el caso de uso al construirlo.
type Option func(*DocumentUseCase)

// WithClock reemplaza la hora del sistema (pruebas).
func WithClock(c Clock) Option {
	return func(uc *DocumentUseCase) { uc.clock = c }
}

// WithMetrics registra contadores.
func WithMetrics(m Metrics) Option {
	return func(uc *DocumentUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(tx TxRunner, cfg Config, log *logger.Logger, opts ...Option) *DocumentUseCase {
	uc := &DocumentUseCase{
		tx:      tx,
		cfg:     cfg.withDefaults(),
		log:     log,
		metrics: noopMetrics{},
		clock:   systemClock,
		effects: map[entity.DocumentKind]kindEffects{
			entity.KindGoodsReceipt: receiptEffects{},
			entity.KindGoodsIssue:   issueEffects{},
		},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create crea un documento en su estado inicial con el siguiente número del día.
// Los documentos de inventario y de ocupación se llenan en la misma transacción.
func (uc *DocumentUseCase) Create(ctx context.Context, authorID int64, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	kind := entity.DocumentKind(in.Kind)
	wf, err := inventory.WorkflowFor(kind)
	if err != nil {
		return nil, err
	}
	prefix, err := inventory.Prefix(kind)
	if err != nil {
		return nil, err
	}

	var doc *entity.Document
	err = uc.retryOnConflict(ctx, "create_document", func(repos repository.Set) error {
		if _, err := employee(ctx, repos, authorID); err != nil {
			return err
		}
		now := uc.clock()
		day := inventory.NumberDay(now)
		seq, err := repos.Sequences.Next(ctx, prefix, day)
		if err != nil {
			return err
		}
		doc = &entity.Document{
			Number:    inventory.FormatNumber(prefix, day, seq),
			Kind:      kind,
			Status:    wf.Initial(),
			AuthorID:  authorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		switch kind {
		case entity.KindGoodsReceipt:
			doc.Receipt = &entity.ReceiptDetails{DeliveryDate: timeOr(in.DeliveryDate, now)}
		case entity.KindGoodsIssue:
			doc.Issue = &entity.IssueDetails{SaleDate: timeOr(in.SaleDate, now)}
		}
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}

		lk := newLookup(repos, uc.cfg.RackCeiling)
		switch kind {
		case entity.KindInventory:
			return fillInventoryLines(ctx, lk, doc, now)
		case entity.KindStorageReport:
			return fillStorageReportLines(ctx, lk, doc, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.DocumentCreated(string(kind))
	uc.log.Info().
		Int64("document_id", doc.ID).
		Str("number", doc.Number).
		Str("kind", string(kind)).
		Int64("author_id", authorID).
		Msg("documento creado")
	return uc.Get(ctx, doc.ID)
}

// AddLine agrega una línea. En entradas un producto repetido es DuplicateProduct;
// en salidas la cantidad se suma a la línea existente si hay stock total suficiente.
// La primera línea pasa el documento de new a lines_open.
func (uc *DocumentUseCase) AddLine(ctx context.Context, documentID int64, in dto.AddLineRequest) (*dto.AddLineResponse, error) {
	if in.ProductID <= 0 || !in.Quantity.IsPositive() || !entity.FitsScale(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	var out dto.AddLineResponse
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		doc, wf, err := documentForUpdate(ctx, repos, documentID)
		if err != nil {
			return err
		}
		if !wf.AcceptsLines(doc.Status) {
			return &domain.InvalidStateError{Kind: string(doc.Kind), From: string(doc.Status), To: string(entity.StatusLinesOpen)}
		}
		lk := newLookup(repos, uc.cfg.RackCeiling)
		if _, err := lk.product(ctx, in.ProductID); err != nil {
			return err
		}
		existing, err := repos.Lines.FindByProduct(ctx, doc.ID, in.ProductID)
		if err != nil {
			return err
		}

		switch wf.LinePolicy() {
		case inventory.LinesUnique:
			if existing != nil {
				return &domain.DuplicateProductError{DocumentID: doc.ID, ProductID: in.ProductID}
			}
		case inventory.LinesMerge:
			available, err := repos.Balances.TotalByProduct(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if available.LessThan(in.Quantity) {
				return &domain.InsufficientStockError{ProductID: in.ProductID, Available: available, Requested: in.Quantity}
			}
			if in.PickerID != nil {
				if _, err := employee(ctx, repos, *in.PickerID); err != nil {
					return err
				}
			}
		}

		now := uc.clock()
		if existing != nil {
			qty := existing.Quantity.Add(in.Quantity)
			if err := repos.Lines.UpdateQuantity(ctx, existing.ID, qty, now); err != nil {
				return err
			}
			out = dto.AddLineResponse{LineID: existing.ID, Quantity: qty, Merged: true}
		} else {
			line := &entity.DocumentLine{
				DocumentID: doc.ID,
				ProductID:  in.ProductID,
				Quantity:   in.Quantity,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			switch doc.Kind {
			case entity.KindGoodsReceipt:
				line.Receipt = &entity.ReceiptLineDetails{BatchNumber: in.BatchNumber, ExpiryDate: in.ExpiryDate}
			case entity.KindGoodsIssue:
				line.Issue = &entity.IssueLineDetails{PickerID: in.PickerID}
			}
			if err := repos.Lines.Create(ctx, line); err != nil {
				return err
			}
			out = dto.AddLineResponse{LineID: line.ID, Quantity: line.Quantity}
		}

		if doc.Status == entity.StatusNew {
			return repos.Documents.UpdateStatus(ctx, doc.ID, entity.StatusLinesOpen, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignLocation asigna una ubicación a una línea de entrada.
func (uc *DocumentUseCase) AssignLocation(ctx context.Context, documentID, lineID, locationID int64) error {
	return uc.AssignLocations(ctx, documentID, []dto.LocationAssignment{{LineID: lineID, LocationID: locationID}})
}

// AssignLocations valida el peso de las asignaciones nuevas junto con las ya hechas en la
// entrada contra el límite de cada rack, reemplaza la ubicación previa de cada línea
// y deja la entrada en located.
func (uc *DocumentUseCase) AssignLocations(ctx context.Context, documentID int64, assignments []dto.LocationAssignment) error {
	if len(assignments) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		doc, _, err := documentForUpdate(ctx, repos, documentID)
		if err != nil {
			return err
		}
		if doc.Kind != entity.KindGoodsReceipt ||
			(doc.Status != entity.StatusLinesOpen && doc.Status != entity.StatusLocated) {
			return &domain.InvalidStateError{Kind: string(doc.Kind), From: string(doc.Status), To: string(entity.StatusLocated)}
		}
		lines, err := repos.Lines.ListByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		known := make(map[int64]bool, len(lines))
		for _, l := range lines {
			known[l.ID] = true
		}
		batch := make(map[int64]int64, len(assignments))
		for _, a := range assignments {
			if !known[a.LineID] {
				return domain.NewNotFound("línea", a.LineID)
			}
			if _, dup := batch[a.LineID]; dup {
				return domain.ErrInvalidInput
			}
			batch[a.LineID] = a.LocationID
		}

		previous, err := repos.Assignments.ListByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		// El peso se valida sobre todas las líneas ubicadas de la entrada, no sólo el lote.
		merged := assignmentMap(previous)
		for lineID, locID := range batch {
			merged[lineID] = locID
		}

		lk := newLookup(repos, uc.cfg.RackCeiling)
		placements, err := placementsFor(ctx, lk, lines, merged)
		if err != nil {
			return err
		}
		if _, err := reserveCapacity(ctx, lk, placements); err != nil {
			return err
		}

		now := uc.clock()
		for _, p := range placements {
			if _, ok := batch[p.line.ID]; !ok {
				continue
			}
			if err := repos.Assignments.Replace(ctx, &entity.LineAssignment{
				DocumentLineID:    p.line.ID,
				StorageLocationID: p.location.ID,
				CreatedAt:         now,
			}); err != nil {
				return err
			}
		}
		if doc.Status == entity.StatusLinesOpen {
			return repos.Documents.UpdateStatus(ctx, doc.ID, entity.StatusLocated, now)
		}
		return nil
	})
}

// Transition lleva el documento al estado target aplicando sus efectos:
// el cierre de una entrada suma peso y saldos, el de una salida descuenta saldos.
func (uc *DocumentUseCase) Transition(ctx context.Context, documentID int64, target entity.DocumentStatus) error {
	if !target.Valid() {
		return domain.NewNotFound("estado", target)
	}
	var kind entity.DocumentKind
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		doc, wf, err := documentForUpdate(ctx, repos, documentID)
		if err != nil {
			return err
		}
		kind = doc.Kind
		if err := wf.ValidateTransition(doc.Status, target); err != nil {
			return err
		}
		now := uc.clock()
		if eff, ok := uc.effects[doc.Kind]; ok {
			if err := eff.ApplyEffect(ctx, newLookup(repos, uc.cfg.RackCeiling), doc, target, now); err != nil {
				return err
			}
		}
		return repos.Documents.UpdateStatus(ctx, doc.ID, target, now)
	})
	uc.metrics.TransitionApplied(string(kind), string(target), Outcome(err))
	if err != nil {
		return err
	}
	uc.log.Info().
		Int64("document_id", documentID).
		Str("kind", string(kind)).
		Str("status", string(target)).
		Msg("transición aplicada")
	return nil
}

// Get devuelve el documento con sus líneas.
func (uc *DocumentUseCase) Get(ctx context.Context, documentID int64) (*dto.DocumentResponse, error) {
	var out *dto.DocumentResponse
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		doc, err := repos.Documents.GetByID(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NewNotFound("documento", documentID)
		}
		out, err = buildDocumentView(ctx, newLookup(repos, uc.cfg.RackCeiling), doc)
		return err
	})
	return out, err
}

// List devuelve documentos del tipo indicado (todos si kind es vacío), del más reciente al más antiguo.
func (uc *DocumentUseCase) List(ctx context.Context, kind string, page dto.PageRequest) ([]dto.DocumentSummary, error) {
	page.DefaultPage()
	k := entity.DocumentKind(kind)
	if k != "" && !k.Valid() {
		return nil, domain.NewNotFound("tipo de documento", kind)
	}
	var out []dto.DocumentSummary
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		docs, err := repos.Documents.List(ctx, k, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.DocumentSummary, 0, len(docs))
		for _, d := range docs {
			out = append(out, summaryOf(d))
		}
		return nil
	})
	return out, err
}

// retryOnConflict repite fn en una transacción nueva mientras falle con ErrConflict.
func (uc *DocumentUseCase) retryOnConflict(ctx context.Context, operation string, fn func(repos repository.Set) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = uc.tx.Run(ctx, fn)
		if !domain.IsRetryable(err) || attempt >= uc.cfg.NumberRetries || ctx.Err() != nil {
			return err
		}
		uc.metrics.ConflictRetried(operation)
		uc.log.Warn().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Msg("conflicto concurrente, reintentando")
	}
}

func documentForUpdate(ctx context.Context, repos repository.Set, id int64) (*entity.Document, inventory.Workflow, error) {
	doc, err := repos.Documents.GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.NewNotFound("documento", id)
	}
	wf, err := inventory.WorkflowFor(doc.Kind)
	if err != nil {
		return nil, nil, err
	}
	return doc, wf, nil
}

func timeOr(t *time.Time, def time.Time) time.Time {
	if t == nil || t.IsZero() {
		return def
	}
	return t.UTC()
}

// Outcome etiqueta de métricas para el resultado de una operación.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return "insufficient_capacity"
	case errors.Is(err, domain.ErrIncompleteAssignment):
		return "incomplete_assignment"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
