package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Los repositorios solo se usan dentro de Store.Run, con el mutex tomado.

type documentRepo struct{ s *Store }

func (r documentRepo) Create(_ context.Context, doc *entity.Document) error {
	t := r.s.data
	if _, taken := t.numbers[doc.Number]; taken {
		return fmt.Errorf("crear documento %s: %w", doc.Number, domain.ErrConflict)
	}
	doc.ID = t.id("documents", 0)
	t.documents[doc.ID] = *doc
	t.numbers[doc.Number] = doc.ID
	return nil
}

func (r documentRepo) GetByID(_ context.Context, id int64) (*entity.Document, error) {
	d, ok := r.s.data.documents[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r documentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r documentRepo) UpdateStatus(_ context.Context, id int64, status entity.DocumentStatus, at time.Time) error {
	d, ok := r.s.data.documents[id]
	if !ok {
		return domain.NewNotFound("documento", id)
	}
	d.Status = status
	d.UpdatedAt = at
	r.s.data.documents[id] = d
	return nil
}

func (r documentRepo) List(_ context.Context, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.s.data.documents {
		if kind != "" && d.Kind != kind {
			continue
		}
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

type lineRepo struct{ s *Store }

func (r lineRepo) Create(_ context.Context, line *entity.DocumentLine) error {
	t := r.s.data
	for _, l := range t.lines {
		if l.DocumentID == line.DocumentID && l.ProductID == line.ProductID {
			return fmt.Errorf("crear línea: %w", domain.ErrConflict)
		}
	}
	line.ID = t.id("lines", 0)
	t.lines[line.ID] = *line
	return nil
}

func (r lineRepo) GetByID(_ context.Context, id int64) (*entity.DocumentLine, error) {
	l, ok := r.s.data.lines[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r lineRepo) FindByProduct(_ context.Context, documentID, productID int64) (*entity.DocumentLine, error) {
	for _, l := range r.s.data.lines {
		if l.DocumentID == documentID && l.ProductID == productID {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r lineRepo) UpdateQuantity(_ context.Context, id int64, qty decimal.Decimal, at time.Time) error {
	l, ok := r.s.data.lines[id]
	if !ok {
		return domain.NewNotFound("línea", id)
	}
	l.Quantity = qty
	l.UpdatedAt = at
	r.s.data.lines[id] = l
	return nil
}

func (r lineRepo) ListByDocument(_ context.Context, documentID int64) ([]*entity.DocumentLine, error) {
	var out []*entity.DocumentLine
	for _, l := range r.s.data.lines {
		if l.DocumentID == documentID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r lineRepo) CountByProduct(_ context.Context, kinds []entity.DocumentKind, limit int) ([]entity.ProductFrequency, error) {
	t := r.s.data
	wanted := make(map[entity.DocumentKind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}
	counts := make(map[int64]int)
	for _, l := range t.lines {
		d, ok := t.documents[l.DocumentID]
		if !ok || (len(wanted) > 0 && !wanted[d.Kind]) {
			continue
		}
		counts[l.ProductID]++
	}
	out := make([]entity.ProductFrequency, 0, len(counts))
	for id, n := range counts {
		out = append(out, entity.ProductFrequency{ProductID: id, Lines: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lines != out[j].Lines {
			return out[i].Lines > out[j].Lines
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type assignmentRepo struct{ s *Store }

func (r assignmentRepo) Replace(_ context.Context, a *entity.LineAssignment) error {
	t := r.s.data
	if prev, ok := t.assignments[a.DocumentLineID]; ok {
		a.ID = prev.ID
	} else {
		a.ID = t.id("assignments", 0)
	}
	t.assignments[a.DocumentLineID] = *a
	return nil
}

func (r assignmentRepo) ListByDocument(_ context.Context, documentID int64) ([]*entity.LineAssignment, error) {
	t := r.s.data
	var out []*entity.LineAssignment
	for lineID, a := range t.assignments {
		if l, ok := t.lines[lineID]; ok && l.DocumentID == documentID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentLineID < out[j].DocumentLineID })
	return out, nil
}

type balanceRepo struct{ s *Store }

func (r balanceRepo) Get(_ context.Context, productID, locationID int64) (*entity.ProductBalance, error) {
	b, ok := r.s.data.balances[balanceKey{productID, locationID}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r balanceRepo) ListByProductForUpdate(_ context.Context, productID int64) ([]*entity.ProductBalance, error) {
	var out []*entity.ProductBalance
	for k, b := range r.s.data.balances {
		if k.productID == productID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Quantity.Cmp(out[j].Quantity); c != 0 {
			return c > 0
		}
		return out[i].StorageLocationID < out[j].StorageLocationID
	})
	return out, nil
}

func (r balanceRepo) TotalByProduct(_ context.Context, productID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for k, b := range r.s.data.balances {
		if k.productID == productID {
			total = total.Add(b.Quantity)
		}
	}
	return total, nil
}

func (r balanceRepo) Increment(_ context.Context, productID, locationID int64, qty decimal.Decimal, at time.Time) error {
	t := r.s.data
	key := balanceKey{productID, locationID}
	b, ok := t.balances[key]
	if !ok {
		b = entity.ProductBalance{
			ID:                t.id("balances", 0),
			ProductID:         productID,
			StorageLocationID: locationID,
		}
	}
	next := b.Quantity.Add(qty)
	if next.IsNegative() {
		return fmt.Errorf("saldo %d/%d: %w", productID, locationID, domain.ErrInsufficientStock)
	}
	b.Quantity = next
	b.UpdatedAt = at
	t.balances[key] = b
	return nil
}

func (r balanceRepo) SetQuantity(_ context.Context, id int64, qty decimal.Decimal, at time.Time) error {
	if qty.IsNegative() {
		return fmt.Errorf("saldo %d: %w", id, domain.ErrInsufficientStock)
	}
	t := r.s.data
	for k, b := range t.balances {
		if b.ID == id {
			b.Quantity = qty
			b.UpdatedAt = at
			t.balances[k] = b
			return nil
		}
	}
	return domain.NewNotFound("saldo", id)
}

func (r balanceRepo) List(_ context.Context) ([]*entity.ProductBalance, error) {
	return r.filter(func(entity.ProductBalance) bool { return true }), nil
}

func (r balanceRepo) ListAtOrBelow(_ context.Context, threshold decimal.Decimal) ([]*entity.ProductBalance, error) {
	return r.filter(func(b entity.ProductBalance) bool {
		return b.Quantity.LessThanOrEqual(threshold)
	}), nil
}

func (r balanceRepo) filter(keep func(entity.ProductBalance) bool) []*entity.ProductBalance {
	var out []*entity.ProductBalance
	for _, b := range r.s.data.balances {
		if keep(b) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].StorageLocationID < out[j].StorageLocationID
	})
	return out
}

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	t := r.s.data
	m.ID = t.id("movements", 0)
	t.movements = append(t.movements, *m)
	return nil
}

func (r movementRepo) ListByDocument(_ context.Context, documentID int64) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.data.movements {
		if m.DocumentID == documentID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

type locationRepo struct{ s *Store }

func (r locationRepo) GetByID(_ context.Context, id int64) (*entity.StorageLocation, error) {
	l, ok := r.s.data.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r locationRepo) LockRack(_ context.Context, key entity.RackKey) ([]*entity.StorageLocation, error) {
	var out []*entity.StorageLocation
	for _, l := range r.s.data.locations {
		if l.RackKey() == key {
			l := l
			out = append(out, &l)
		}
	}
	sortLocations(out)
	return out, nil
}

func (r locationRepo) List(_ context.Context) ([]*entity.StorageLocation, error) {
	out := make([]*entity.StorageLocation, 0, len(r.s.data.locations))
	for _, l := range r.s.data.locations {
		l := l
		out = append(out, &l)
	}
	sortLocations(out)
	return out, nil
}

func (r locationRepo) UpdateWeight(_ context.Context, id int64, weight decimal.Decimal, at time.Time) error {
	l, ok := r.s.data.locations[id]
	if !ok {
		return domain.NewNotFound("ubicación", id)
	}
	l.CurrentWeight = weight
	l.UpdatedAt = at
	r.s.data.locations[id] = l
	return nil
}

func (r locationRepo) RackCeiling(_ context.Context, key entity.RackKey) (*decimal.Decimal, error) {
	c, ok := r.s.data.ceilings[key]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func sortLocations(ls []*entity.StorageLocation) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
}

type productRepo struct{ s *Store }

func (r productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.data.products))
	for _, p := range r.s.data.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.s.data.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

type employeeRepo struct{ s *Store }

func (r employeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	e, ok := r.s.data.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

type sequenceRepo struct{ s *Store }

func (r sequenceRepo) Next(_ context.Context, prefix string, day time.Time) (int, error) {
	key := sequenceKey{prefix: prefix, day: day.UTC().Format("20060102")}
	r.s.data.sequences[key]++
	return r.s.data.sequences[key], nil
}

type snapshotRepo struct{ s *Store }

func (r snapshotRepo) AddInventoryLines(_ context.Context, lines []*entity.InventoryLine) error {
	t := r.s.data
	for _, l := range lines {
		l.ID = t.id("inventory_lines", 0)
		t.inventoryLines = append(t.inventoryLines, *l)
	}
	return nil
}

func (r snapshotRepo) ListInventoryLines(_ context.Context, documentID int64) ([]*entity.InventoryLine, error) {
	var out []*entity.InventoryLine
	for _, l := range r.s.data.inventoryLines {
		if l.DocumentID == documentID {
			l := l
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r snapshotRepo) AddStorageReportLines(_ context.Context, lines []*entity.StorageReportLine) error {
	t := r.s.data
	for _, l := range lines {
		l.ID = t.id("storage_report_lines", 0)
		t.reportLines = append(t.reportLines, *l)
	}
	return nil
}

func (r snapshotRepo) ListStorageReportLines(_ context.Context, documentID int64) ([]*entity.StorageReportLine, error) {
	var out []*entity.StorageReportLine
	for _, l := range r.s.data.reportLines {
		if l.DocumentID == documentID {
			l := l
			out = append(out, &l)
		}
	}
	return out, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
