package documents

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func summaryOf(d *entity.Document) dto.DocumentSummary {
	return dto.DocumentSummary{
		ID:        d.ID,
		Number:    d.Number,
		Kind:      string(d.Kind),
		Status:    string(d.Status),
		AuthorID:  d.AuthorID,
		CreatedAt: d.CreatedAt,
	}
}

func buildDocumentView(ctx context.Context, lk *lookup, doc *entity.Document) (*dto.DocumentResponse, error) {
	out := &dto.DocumentResponse{DocumentSummary: summaryOf(doc), UpdatedAt: doc.UpdatedAt}
	if doc.Receipt != nil {
		d := doc.Receipt.DeliveryDate
		out.DeliveryDate = &d
	}
	if doc.Issue != nil {
		d := doc.Issue.SaleDate
		out.SaleDate = &d
	}
	author, err := lk.repos.Employees.GetByID(ctx, doc.AuthorID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		out.AuthorName = author.FullName()
	}

	switch doc.Kind {
	case entity.KindGoodsReceipt, entity.KindGoodsIssue:
		out.Lines, err = lineViews(ctx, lk, doc)
	case entity.KindInventory:
		out.InventoryLines, err = inventoryLineViews(ctx, lk, doc)
	case entity.KindStorageReport:
		out.StorageLines, err = storageLineViews(ctx, lk, doc)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lineViews(ctx context.Context, lk *lookup, doc *entity.Document) ([]dto.DocumentLineResponse, error) {
	lines, err := lk.repos.Lines.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := lk.repos.Assignments.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	assigned := assignmentMap(assignments)

	out := make([]dto.DocumentLineResponse, 0, len(lines))
	for _, l := range lines {
		p, err := lk.product(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		v := dto.DocumentLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			ArticleNumber: p.ArticleNumber,
			ProductName:   p.Name,
			Quantity:      l.Quantity,
		}
		if l.Receipt != nil {
			v.BatchNumber = l.Receipt.BatchNumber
			v.ExpiryDate = l.Receipt.ExpiryDate
		}
		if l.Issue != nil {
			v.PickerID = l.Issue.PickerID
		}
		if locID, ok := assigned[l.ID]; ok {
			loc, err := lk.location(ctx, locID)
			if err != nil {
				return nil, err
			}
			id := loc.ID
			v.LocationID = &id
			v.LocationCode = loc.Code()
		}
		out = append(out, v)
	}
	return out, nil
}

func inventoryLineViews(ctx context.Context, lk *lookup, doc *entity.Document) ([]dto.InventoryLineResponse, error) {
	lines, err := lk.repos.Snapshots.ListInventoryLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLineResponse, 0, len(lines))
	for _, l := range lines {
		p, err := lk.product(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		loc, err := lk.location(ctx, l.StorageLocationID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.InventoryLineResponse{
			ProductID:     l.ProductID,
			ArticleNumber: p.ArticleNumber,
			ProductName:   p.Name,
			LocationID:    loc.ID,
			LocationCode:  loc.Code(),
			Quantity:      l.Quantity,
			RecordedAt:    l.RecordedAt,
		})
	}
	return out, nil
}

func storageLineViews(ctx context.Context, lk *lookup, doc *entity.Document) ([]dto.StorageReportLineResponse, error) {
	lines, err := lk.repos.Snapshots.ListStorageReportLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorageReportLineResponse, 0, len(lines))
	for _, l := range lines {
		loc, err := lk.location(ctx, l.StorageLocationID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.StorageReportLineResponse{
			LocationID:    loc.ID,
			LocationCode:  loc.Code(),
			CurrentWeight: l.CurrentWeight,
			StockWeight:   l.StockWeight,
			Ceiling:       l.Ceiling,
			Utilization:   l.Utilization,
			RecordedAt:    l.RecordedAt,
		})
	}
	return out, nil
}

// balanceViews enriquece saldos con producto, ubicación y bodega.
func balanceViews(ctx context.Context, lk *lookup, balances []*entity.ProductBalance) ([]dto.ProductBalanceView, error) {
	out := make([]dto.ProductBalanceView, 0, len(balances))
	for _, b := range balances {
		p, err := lk.product(ctx, b.ProductID)
		if err != nil {
			return nil, err
		}
		loc, err := lk.location(ctx, b.StorageLocationID)
		if err != nil {
			return nil, err
		}
		w, err := lk.warehouse(ctx, loc.WarehouseID)
		if err != nil {
			return nil, err
		}
		v := dto.ProductBalanceView{
			ProductID:     p.ID,
			ArticleNumber: p.ArticleNumber,
			ProductName:   p.Name,
			LocationID:    loc.ID,
			LocationCode:  loc.Code(),
			WarehouseID:   loc.WarehouseID,
			Quantity:      b.Quantity,
			UpdatedAt:     b.UpdatedAt,
		}
		if w != nil {
			v.WarehouseName = w.Name
		}
		out = append(out, v)
	}
	return out, nil
}
