package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
)

// fillInventoryLines copia todos los saldos vigentes al documento de inventario.
func fillInventoryLines(ctx context.Context, lk *lookup, doc *entity.Document, now time.Time) error {
	balances, err := lk.repos.Balances.List(ctx)
	if err != nil {
		return err
	}
	lines := make([]*entity.InventoryLine, 0, len(balances))
	for _, b := range balances {
		lines = append(lines, &entity.InventoryLine{
			DocumentID:        doc.ID,
			ProductID:         b.ProductID,
			StorageLocationID: b.StorageLocationID,
			Quantity:          b.Quantity,
			RecordedAt:        now,
		})
	}
	if len(lines) == 0 {
		return nil
	}
	return lk.repos.Snapshots.AddInventoryLines(ctx, lines)
}

// fillStorageReportLines registra el peso de cada ubicación frente al límite de su rack.
func fillStorageReportLines(ctx context.Context, lk *lookup, doc *entity.Document, now time.Time) error {
	locations, err := lk.repos.Locations.List(ctx)
	if err != nil {
		return err
	}
	stock, err := stockWeightByLocation(ctx, lk)
	if err != nil {
		return err
	}
	lines := make([]*entity.StorageReportLine, 0, len(locations))
	for _, loc := range locations {
		ceiling, err := lk.ceilingFor(ctx, loc.RackKey())
		if err != nil {
			return err
		}
		lines = append(lines, &entity.StorageReportLine{
			DocumentID:        doc.ID,
			StorageLocationID: loc.ID,
			CurrentWeight:     loc.CurrentWeight,
			StockWeight:       stock[loc.ID],
			Ceiling:           ceiling,
			Utilization:       inventory.Utilization(loc.CurrentWeight, ceiling),
			RecordedAt:        now,
		})
	}
	if len(lines) == 0 {
		return nil
	}
	return lk.repos.Snapshots.AddStorageReportLines(ctx, lines)
}

// stockWeightByLocation peso de la mercancía que el libro registra en cada ubicación.
func stockWeightByLocation(ctx context.Context, lk *lookup) (map[int64]decimal.Decimal, error) {
	balances, err := lk.repos.Balances.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]decimal.Decimal)
	for _, b := range balances {
		p, err := lk.product(ctx, b.ProductID)
		if err != nil {
			return nil, err
		}
		out[b.StorageLocationID] = out[b.StorageLocationID].Add(p.WeightOf(b.Quantity))
	}
	return out, nil
}
