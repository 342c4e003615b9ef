package documents

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// kindEffects efectos de las transiciones de un tipo de documento.
// ApplyEffect valida todas las líneas antes de la primera escritura.
type kindEffects interface {
	ApplyEffect(ctx context.Context, lk *lookup, doc *entity.Document, to entity.DocumentStatus, now time.Time) error
}

// placement una línea de entrada con su ubicación destino y el peso que agrega.
type placement struct {
	line     *entity.DocumentLine
	location *entity.StorageLocation
	weight   decimal.Decimal
}

// capacityPlan resultado de reservar peso en los racks involucrados.
type capacityPlan struct {
	placements []placement
	// locked ubicaciones releídas bajo bloqueo del rack.
	locked map[int64]*entity.StorageLocation
}

// reserveCapacity bloquea los racks en orden fijo y reserva el peso de cada ubicación.
// Devuelve *domain.InsufficientCapacityError si algún rack quedaría por encima de su límite.
func reserveCapacity(ctx context.Context, lk *lookup, placements []placement) (*capacityPlan, error) {
	byRack := make(map[entity.RackKey][]placement)
	for _, p := range placements {
		key := p.location.RackKey()
		byRack[key] = append(byRack[key], p)
	}
	keys := make([]entity.RackKey, 0, len(byRack))
	for k := range byRack {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	plan := &capacityPlan{placements: placements, locked: make(map[int64]*entity.StorageLocation)}
	for _, key := range keys {
		locs, err := lk.repos.Locations.LockRack(ctx, key)
		if err != nil {
			return nil, err
		}
		for _, l := range locs {
			plan.locked[l.ID] = l
		}
		ceiling, err := lk.ceilingFor(ctx, key)
		if err != nil {
			return nil, err
		}
		load := inventory.NewRackLoad(key, locs, ceiling)
		for _, p := range byRack[key] {
			if err := load.Reserve(p.weight); err != nil {
				return nil, err
			}
		}
	}
	return plan, nil
}

// placementsFor arma las líneas con destino usando assigned (línea -> ubicación).
func placementsFor(ctx context.Context, lk *lookup, lines []*entity.DocumentLine, assigned map[int64]int64) ([]placement, error) {
	out := make([]placement, 0, len(assigned))
	for _, line := range lines {
		locID, ok := assigned[line.ID]
		if !ok {
			continue
		}
		loc, err := lk.location(ctx, locID)
		if err != nil {
			return nil, err
		}
		product, err := lk.product(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, placement{line: line, location: loc, weight: product.WeightOf(line.Quantity)})
	}
	return out, nil
}

func assignmentMap(assignments []*entity.LineAssignment) map[int64]int64 {
	m := make(map[int64]int64, len(assignments))
	for _, a := range assignments {
		m[a.DocumentLineID] = a.StorageLocationID
	}
	return m
}

type receiptEffects struct{}

func (receiptEffects) ApplyEffect(ctx context.Context, lk *lookup, doc *entity.Document, to entity.DocumentStatus, now time.Time) error {
	lines, err := lk.repos.Lines.ListByDocument(ctx, doc.ID)
	if err != nil {
		return err
	}
	assignments, err := lk.repos.Assignments.ListByDocument(ctx, doc.ID)
	if err != nil {
		return err
	}
	assigned := assignmentMap(assignments)

	switch to {
	case entity.StatusLocated:
		placements, err := placementsFor(ctx, lk, lines, assigned)
		if err != nil {
			return err
		}
		_, err = reserveCapacity(ctx, lk, placements)
		return err
	case entity.StatusClosed:
		var missing []int64
		for _, line := range lines {
			if _, ok := assigned[line.ID]; !ok {
				missing = append(missing, line.ID)
			}
		}
		if len(missing) > 0 {
			return &domain.IncompleteAssignmentError{LineIDs: missing}
		}
		placements, err := placementsFor(ctx, lk, lines, assigned)
		if err != nil {
			return err
		}
		plan, err := reserveCapacity(ctx, lk, placements)
		if err != nil {
			return err
		}
		return applyReceipt(ctx, lk.repos, doc, plan, now)
	}
	return nil
}

// applyReceipt suma peso a las ubicaciones y cantidades al libro.
func applyReceipt(ctx context.Context, repos repository.Set, doc *entity.Document, plan *capacityPlan, now time.Time) error {
	added := make(map[int64]decimal.Decimal)
	for _, p := range plan.placements {
		added[p.location.ID] = added[p.location.ID].Add(p.weight)
	}
	locIDs := make([]int64, 0, len(added))
	for id := range added {
		locIDs = append(locIDs, id)
	}
	sort.Slice(locIDs, func(i, j int) bool { return locIDs[i] < locIDs[j] })
	for _, id := range locIDs {
		loc := plan.locked[id]
		if loc == nil {
			return domain.NewNotFound("ubicación", id)
		}
		if err := repos.Locations.UpdateWeight(ctx, id, loc.CurrentWeight.Add(added[id]), now); err != nil {
			return err
		}
	}

	placements := append([]placement(nil), plan.placements...)
	sort.Slice(placements, func(i, j int) bool {
		if placements[i].line.ProductID != placements[j].line.ProductID {
			return placements[i].line.ProductID < placements[j].line.ProductID
		}
		return placements[i].location.ID < placements[j].location.ID
	})
	txID := uuid.New().String()
	for _, p := range placements {
		if err := repos.Balances.Increment(ctx, p.line.ProductID, p.location.ID, p.line.Quantity, now); err != nil {
			return err
		}
		if err := repos.Movements.Create(ctx, &entity.StockMovement{
			TransactionID:     txID,
			DocumentID:        doc.ID,
			ProductID:         p.line.ProductID,
			StorageLocationID: p.location.ID,
			Quantity:          p.line.Quantity,
			CreatedBy:         doc.AuthorID,
			CreatedAt:         now,
		}); err != nil {
			return err
		}
	}
	return nil
}

type issueEffects struct{}

func (issueEffects) ApplyEffect(ctx context.Context, lk *lookup, doc *entity.Document, to entity.DocumentStatus, now time.Time) error {
	if to != entity.StatusClosed {
		return nil
	}
	lines, err := lk.repos.Lines.ListByDocument(ctx, doc.ID)
	if err != nil {
		return err
	}
	sorted := append([]*entity.DocumentLine(nil), lines...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	// Primero se planifica todo; si un producto no alcanza no se escribe nada.
	var plan []inventory.Decrement
	for _, line := range sorted {
		balances, err := lk.repos.Balances.ListByProductForUpdate(ctx, line.ProductID)
		if err != nil {
			return err
		}
		decrements, err := inventory.PlanDecrement(line.ProductID, balances, line.Quantity)
		if err != nil {
			return err
		}
		plan = append(plan, decrements...)
	}

	txID := uuid.New().String()
	for _, d := range plan {
		if err := lk.repos.Balances.SetQuantity(ctx, d.Balance.ID, d.Remaining(), now); err != nil {
			return err
		}
		if err := lk.repos.Movements.Create(ctx, &entity.StockMovement{
			TransactionID:     txID,
			DocumentID:        doc.ID,
			ProductID:         d.Balance.ProductID,
			StorageLocationID: d.Balance.StorageLocationID,
			Quantity:          d.Take.Neg(),
			CreatedBy:         doc.AuthorID,
			CreatedAt:         now,
		}); err != nil {
			return err
		}
	}
	return nil
}
