package documents

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReportUseCase consultas de solo lectura sobre el libro y los racks.
type ReportUseCase struct {
	tx  TxRunner
	cfg Config
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(tx TxRunner, cfg Config) *ReportUseCase {
	return &ReportUseCase{tx: tx, cfg: cfg.withDefaults()}
}

// SnapshotInventory saldos vigentes por producto y ubicación.
func (uc *ReportUseCase) SnapshotInventory(ctx context.Context) ([]dto.ProductBalanceView, error) {
	var out []dto.ProductBalanceView
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		balances, err := repos.Balances.List(ctx)
		if err != nil {
			return err
		}
		out, err = balanceViews(ctx, newLookup(repos, uc.cfg.RackCeiling), balances)
		return err
	})
	return out, err
}

// LowStock saldos con cantidad menor o igual al umbral (el configurado si threshold es nil).
func (uc *ReportUseCase) LowStock(ctx context.Context, threshold *decimal.Decimal) ([]dto.ProductBalanceView, error) {
	limit := uc.cfg.LowStockThreshold
	if threshold != nil {
		limit = *threshold
	}
	var out []dto.ProductBalanceView
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		balances, err := repos.Balances.ListAtOrBelow(ctx, limit)
		if err != nil {
			return err
		}
		out, err = balanceViews(ctx, newLookup(repos, uc.cfg.RackCeiling), balances)
		return err
	})
	return out, err
}

// FrequentlyMoved productos que aparecen en más líneas de entrada y salida.
func (uc *ReportUseCase) FrequentlyMoved(ctx context.Context, limit int) ([]dto.ProductFrequencyView, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []dto.ProductFrequencyView
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		freq, err := repos.Lines.CountByProduct(ctx,
			[]entity.DocumentKind{entity.KindGoodsReceipt, entity.KindGoodsIssue}, limit)
		if err != nil {
			return err
		}
		lk := newLookup(repos, uc.cfg.RackCeiling)
		out = make([]dto.ProductFrequencyView, 0, len(freq))
		for _, f := range freq {
			p, err := lk.product(ctx, f.ProductID)
			if err != nil {
				return err
			}
			out = append(out, dto.ProductFrequencyView{
				ProductID:     p.ID,
				ArticleNumber: p.ArticleNumber,
				ProductName:   p.Name,
				Lines:         f.Lines,
			})
		}
		return nil
	})
	return out, err
}

// RackUtilization peso acumulado de cada rack frente a su límite.
func (uc *ReportUseCase) RackUtilization(ctx context.Context) ([]dto.RackUtilizationView, error) {
	var out []dto.RackUtilizationView
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		locations, err := repos.Locations.List(ctx)
		if err != nil {
			return err
		}
		lk := newLookup(repos, uc.cfg.RackCeiling)
		byRack := make(map[entity.RackKey]*dto.RackUtilizationView)
		var keys []entity.RackKey
		for _, loc := range locations {
			key := loc.RackKey()
			v, ok := byRack[key]
			if !ok {
				ceiling, err := lk.ceilingFor(ctx, key)
				if err != nil {
					return err
				}
				v = &dto.RackUtilizationView{
					WarehouseID: key.WarehouseID,
					Building:    key.Building,
					Room:        key.Room,
					Rack:        key.Rack,
					Weight:      decimal.Zero,
					Ceiling:     ceiling,
				}
				byRack[key] = v
				keys = append(keys, key)
			}
			v.Locations++
			v.Weight = v.Weight.Add(loc.CurrentWeight)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		out = make([]dto.RackUtilizationView, 0, len(keys))
		for _, k := range keys {
			v := byRack[k]
			v.Utilization = inventory.Utilization(v.Weight, v.Ceiling)
			out = append(out, *v)
		}
		return nil
	})
	return out, err
}
