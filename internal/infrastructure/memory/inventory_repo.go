package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

type itemRepo struct{ s *session }

func (r *itemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	st, done := r.s.write()
	defer done()
	for _, other := range st.items {
		if other.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	st.items[item.ID] = *item
	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	st, done := r.s.read()
	defer done()
	it, ok := st.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	st, done := r.s.write()
	defer done()
	it, ok := st.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.QuantityOnHand = quantity
	st.items[id] = it
	return nil
}

func (r *itemRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	st, done := r.s.write()
	defer done()
	it, ok := st.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CostPrice = cost
	st.items[id] = it
	return nil
}

func (r *itemRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.InventoryItem, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.InventoryItem
	for _, it := range st.items {
		if activeOnly && !it.Active {
			continue
		}
		out = append(out, &it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *itemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.InventoryItem
	for _, it := range st.items {
		if it.Active && it.LowStock() {
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].MinStockLevel - out[i].QuantityOnHand
		dj := out[j].MinStockLevel - out[j].QuantityOnHand
		if di != dj {
			return di > dj
		}
		return out[i].SKU < out[j].SKU
	})
	return out, nil
}

type movementRepo struct{ s *session }

func (r *movementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	st, done := r.s.write()
	defer done()
	st.movements = append(st.movements, *m)
	return nil
}

func (r *movementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.InventoryMovement
	for i := len(st.movements) - 1; i >= 0; i-- {
		m := st.movements[i]
		if m.InventoryItemID != itemID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && !m.Date.Before(*to) {
			continue
		}
		out = append(out, &m)
	}
	return page(out, limit, offset), nil
}
