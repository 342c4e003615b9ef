package inventory

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LinePolicy regla para un producto repetido dentro del mismo documento.
type LinePolicy int

const (
	// LinesNone el documento no recibe líneas manuales.
	LinesNone LinePolicy = iota
	// LinesUnique rechaza un segundo renglón del mismo producto.
	LinesUnique
	// LinesMerge suma la cantidad al renglón existente.
	LinesMerge
)

// Workflow reglas de ciclo de vida de un tipo de documento.
type Workflow interface {
	Kind() entity.DocumentKind
	Initial() entity.DocumentStatus
	Statuses() []entity.DocumentStatus
	AcceptsLines(status entity.DocumentStatus) bool
	LinePolicy() LinePolicy
	// ValidateTransition devuelve *domain.InvalidStateError si from -> to no está permitido.
	ValidateTransition(from, to entity.DocumentStatus) error
}

type workflow struct {
	kind       entity.DocumentKind
	initial    entity.DocumentStatus
	statuses   []entity.DocumentStatus
	lineStates []entity.DocumentStatus
	policy     LinePolicy
	edges      map[entity.DocumentStatus][]entity.DocumentStatus
}

func (w *workflow) Kind() entity.DocumentKind         { return w.kind }
func (w *workflow) Initial() entity.DocumentStatus    { return w.initial }
func (w *workflow) Statuses() []entity.DocumentStatus { return w.statuses }
func (w *workflow) LinePolicy() LinePolicy            { return w.policy }

func (w *workflow) AcceptsLines(status entity.DocumentStatus) bool {
	return contains(w.lineStates, status)
}

func (w *workflow) ValidateTransition(from, to entity.DocumentStatus) error {
	if contains(w.edges[from], to) {
		return nil
	}
	return &domain.InvalidStateError{Kind: string(w.kind), From: string(from), To: string(to)}
}

// La transición new -> lines_open la produce el primer AddLine, no una llamada explícita.
var workflows = map[entity.DocumentKind]Workflow{
	entity.KindGoodsReceipt: &workflow{
		kind:       entity.KindGoodsReceipt,
		initial:    entity.StatusNew,
		statuses:   []entity.DocumentStatus{entity.StatusNew, entity.StatusLinesOpen, entity.StatusLocated, entity.StatusClosed},
		lineStates: []entity.DocumentStatus{entity.StatusNew, entity.StatusLinesOpen},
		policy:     LinesUnique,
		edges: map[entity.DocumentStatus][]entity.DocumentStatus{
			entity.StatusLinesOpen: {entity.StatusLocated},
			entity.StatusLocated:   {entity.StatusClosed},
		},
	},
	entity.KindGoodsIssue: &workflow{
		kind:       entity.KindGoodsIssue,
		initial:    entity.StatusNew,
		statuses:   []entity.DocumentStatus{entity.StatusNew, entity.StatusLinesOpen, entity.StatusIssued, entity.StatusClosed},
		lineStates: []entity.DocumentStatus{entity.StatusNew, entity.StatusLinesOpen},
		policy:     LinesMerge,
		edges: map[entity.DocumentStatus][]entity.DocumentStatus{
			entity.StatusNew:       {entity.StatusIssued},
			entity.StatusLinesOpen: {entity.StatusIssued},
			entity.StatusIssued:    {entity.StatusClosed},
		},
	},
	entity.KindInventory: &workflow{
		kind:     entity.KindInventory,
		initial:  entity.StatusClosed,
		statuses: []entity.DocumentStatus{entity.StatusClosed},
		policy:   LinesNone,
	},
	entity.KindStorageReport: &workflow{
		kind:     entity.KindStorageReport,
		initial:  entity.StatusClosed,
		statuses: []entity.DocumentStatus{entity.StatusClosed},
		policy:   LinesNone,
	},
}

// WorkflowFor devuelve las reglas del tipo o NotFound si el tipo no existe.
func WorkflowFor(kind entity.DocumentKind) (Workflow, error) {
	w, ok := workflows[kind]
	if !ok {
		return nil, domain.NewNotFound("tipo de documento", kind)
	}
	return w, nil
}

func contains(list []entity.DocumentStatus, s entity.DocumentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
