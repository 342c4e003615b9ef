package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Decrement porción de un saldo que consume una salida.
type Decrement struct {
	Balance *entity.ProductBalance
	Take    decimal.Decimal
}

// Remaining cantidad que queda en la ubicación después de descontar.
func (d Decrement) Remaining() decimal.Decimal {
	return d.Balance.Quantity.Sub(d.Take)
}

// SortForDrain ordena saldos por cantidad descendente; a igual cantidad, por ubicación.
func SortForDrain(balances []*entity.ProductBalance) {
	sort.SliceStable(balances, func(i, j int) bool {
		c := balances[i].Quantity.Cmp(balances[j].Quantity)
		if c != 0 {
			return c > 0
		}
		return balances[i].StorageLocationID < balances[j].StorageLocationID
	})
}

// PlanDecrement calcula cuánto descontar de cada ubicación para sacar qty unidades,
// vaciando primero las ubicaciones con más stock. No modifica los saldos recibidos.
// Si el total no alcanza devuelve *domain.InsufficientStockError y ningún plan.
func PlanDecrement(productID int64, balances []*entity.ProductBalance, qty decimal.Decimal) ([]Decrement, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	ordered := make([]*entity.ProductBalance, 0, len(balances))
	available := decimal.Zero
	for _, b := range balances {
		if b.ProductID != productID || !b.Quantity.IsPositive() {
			continue
		}
		ordered = append(ordered, b)
		available = available.Add(b.Quantity)
	}
	if available.LessThan(qty) {
		return nil, &domain.InsufficientStockError{ProductID: productID, Available: available, Requested: qty}
	}
	SortForDrain(ordered)

	plan := make([]Decrement, 0, len(ordered))
	remaining := qty
	for _, b := range ordered {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(remaining, b.Quantity)
		plan = append(plan, Decrement{Balance: b, Take: take})
		remaining = remaining.Sub(take)
	}
	return plan, nil
}

// Total suma de cantidades.
func Total(balances []*entity.ProductBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Quantity)
	}
	return sum
}
