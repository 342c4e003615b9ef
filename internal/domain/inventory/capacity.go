package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// DefaultRackCeiling peso máximo de un rack cuando no tiene límite propio.
var DefaultRackCeiling = decimal.NewFromInt(300)

var hundred = decimal.NewFromInt(100)

// RackWeight suma el peso actual de las ubicaciones que pertenecen al rack.
func RackWeight(key entity.RackKey, locations []*entity.StorageLocation) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range locations {
		if l.RackKey() == key {
			sum = sum.Add(l.CurrentWeight)
		}
	}
	return sum
}

// CanAccept indica si el rack de target admite addedWeight más sin superar ceiling.
// locations debe incluir todas las ubicaciones del rack.
func CanAccept(target *entity.StorageLocation, locations []*entity.StorageLocation, addedWeight, ceiling decimal.Decimal) bool {
	return RackWeight(target.RackKey(), locations).Add(addedWeight).LessThanOrEqual(ceiling)
}

// RackLoad acumula reservas de peso sobre un rack durante una transición.
type RackLoad struct {
	Key      entity.RackKey
	Current  decimal.Decimal
	Ceiling  decimal.Decimal
	reserved decimal.Decimal
}

// NewRackLoad parte del peso actual del rack.
func NewRackLoad(key entity.RackKey, locations []*entity.StorageLocation, ceiling decimal.Decimal) *RackLoad {
	return &RackLoad{Key: key, Current: RackWeight(key, locations), Ceiling: ceiling}
}

// CanAccept considera también lo ya reservado.
func (r *RackLoad) CanAccept(added decimal.Decimal) bool {
	return r.Total().Add(added).LessThanOrEqual(r.Ceiling)
}

// Reserve suma added al rack o devuelve *domain.InsufficientCapacityError.
func (r *RackLoad) Reserve(added decimal.Decimal) error {
	if added.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !r.CanAccept(added) {
		return &domain.InsufficientCapacityError{
			Rack:    r.Key.String(),
			Current: r.Total(),
			Added:   added,
			Ceiling: r.Ceiling,
		}
	}
	r.reserved = r.reserved.Add(added)
	return nil
}

// Total peso actual más reservas.
func (r *RackLoad) Total() decimal.Decimal {
	return r.Current.Add(r.reserved)
}

// Utilization porcentaje de weight sobre ceiling, redondeado a dos decimales.
func Utilization(weight, ceiling decimal.Decimal) decimal.Decimal {
	if !ceiling.IsPositive() {
		return decimal.Zero
	}
	return weight.Div(ceiling).Mul(hundred).Round(2)
}
