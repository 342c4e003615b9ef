package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo del catálogo. Weight es el peso por unidad.
type Product struct {
	ID            int64
	ArticleNumber string
	Name          string
	Price         decimal.Decimal
	Weight        decimal.Decimal
	Dimension     decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QuantityScale decimales con que se guardan cantidades y pesos.
const QuantityScale int32 = 3

// FitsScale indica si d no tiene más decimales que QuantityScale.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(QuantityScale))
}

// WeightOf peso total de qty unidades, redondeado a QuantityScale como se almacena.
func (p *Product) WeightOf(qty decimal.Decimal) decimal.Decimal {
	return p.Weight.Mul(qty).Round(QuantityScale)
}
