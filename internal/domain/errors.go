package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidState         = errors.New("transición no permitida desde el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInsufficientCapacity = errors.New("capacidad de rack insuficiente")
	ErrDuplicateProduct     = errors.New("el producto ya tiene una línea en el documento")
	ErrIncompleteAssignment = errors.New("hay líneas sin ubicación asignada")
	ErrConflict             = errors.New("conflicto con una modificación concurrente")
)

// NotFoundError indica qué entidad referenciada no existe.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidStateError describe una transición rechazada.
type InvalidStateError struct {
	Kind string
	From string
	To   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("documento %s: transición %s -> %s no permitida", e.Kind, e.From, e.To)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// InsufficientStockError detalla el faltante de un producto.
type InsufficientStockError struct {
	ProductID int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %d: disponible %s, solicitado %s",
		e.ProductID, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall cantidad que falta para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// InsufficientCapacityError detalla el exceso de peso sobre un rack.
type InsufficientCapacityError struct {
	Rack    string
	Current decimal.Decimal
	Added   decimal.Decimal
	Ceiling decimal.Decimal
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("rack %s: peso actual %s + %s supera el límite %s",
		e.Rack, e.Current.String(), e.Added.String(), e.Ceiling.String())
}

func (e *InsufficientCapacityError) Unwrap() error { return ErrInsufficientCapacity }

// DuplicateProductError identifica la línea existente del producto repetido.
type DuplicateProductError struct {
	DocumentID int64
	ProductID  int64
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("documento %d ya tiene una línea para el producto %d", e.DocumentID, e.ProductID)
}

func (e *DuplicateProductError) Unwrap() error { return ErrDuplicateProduct }

// IncompleteAssignmentError lista las líneas sin ubicación.
type IncompleteAssignmentError struct {
	LineIDs []int64
}

func (e *IncompleteAssignmentError) Error() string {
	return fmt.Sprintf("líneas sin ubicación asignada: %v", e.LineIDs)
}

func (e *IncompleteAssignmentError) Unwrap() error { return ErrIncompleteAssignment }

// IsRetryable indica si el error proviene de una modificación concurrente
// y la operación puede reintentarse.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
