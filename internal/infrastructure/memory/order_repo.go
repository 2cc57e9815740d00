package memory

import (
	"context"
	"maps"
	"sort"

	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/textnorm"
)

type orderRepo struct{ s *session }

func copyItem(it entity.SalesOrderItem) entity.SalesOrderItem {
	if it.Prescription != nil {
		rx := *it.Prescription
		it.Prescription = &rx
	}
	it.LensAttributes = maps.Clone(it.LensAttributes)
	return it
}

func (r *orderRepo) Create(ctx context.Context, order *entity.SalesOrder) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.orders[order.ID]; ok {
		return domain.ErrDuplicate
	}
	header := *order
	header.Items = nil
	st.orders[order.ID] = header
	lines := make([]entity.SalesOrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, copyItem(*it))
	}
	st.orderItems[order.ID] = lines
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *entity.SalesOrder) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	header := *order
	header.Items = nil
	st.orders[order.ID] = header
	return nil
}

func (r *orderRepo) CreateItem(ctx context.Context, item *entity.SalesOrderItem) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.orders[item.OrderID]; !ok {
		return domain.ErrNotFound
	}
	lines := append([]entity.SalesOrderItem(nil), st.orderItems[item.OrderID]...)
	st.orderItems[item.OrderID] = append(lines, copyItem(*item))
	return nil
}

func (r *orderRepo) UpdateItem(ctx context.Context, item *entity.SalesOrderItem) error {
	st, done := r.s.write()
	defer done()
	lines := append([]entity.SalesOrderItem(nil), st.orderItems[item.OrderID]...)
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i] = copyItem(*item)
			st.orderItems[item.OrderID] = lines
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *orderRepo) DeleteItem(ctx context.Context, itemID string) error {
	st, done := r.s.write()
	defer done()
	for orderID, lines := range st.orderItems {
		for i := range lines {
			if lines[i].ID == itemID {
				kept := make([]entity.SalesOrderItem, 0, len(lines)-1)
				kept = append(kept, lines[:i]...)
				st.orderItems[orderID] = append(kept, lines[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	st, done := r.s.read()
	defer done()
	o, ok := st.orders[id]
	if !ok {
		return nil, nil
	}
	for _, it := range st.orderItems[id] {
		c := copyItem(it)
		o.Items = append(o.Items, &c)
	}
	return &o, nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) Find(ctx context.Context, f repository.OrderFilter) ([]*entity.SalesOrder, error) {
	st, done := r.s.read()
	defer done()
	q := textnorm.Fold(f.PatientQuery)
	var out []*entity.SalesOrder
	for _, o := range st.orders {
		if f.From != nil && o.OrderDate.Before(*f.From) {
			continue
		}
		if f.To != nil && !o.OrderDate.Before(*f.To) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if q != "" {
			if o.PatientID == nil {
				continue
			}
			p, ok := st.patients[*o.PatientID]
			if !ok || !patientMatches(p, q) {
				continue
			}
		}
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return page(out, f.Limit, f.Offset), nil
}

func (r *orderRepo) CountByShift(ctx context.Context, shiftID string) (int, error) {
	st, done := r.s.read()
	defer done()
	n := 0
	for _, o := range st.orders {
		if o.ShiftID == shiftID {
			n++
		}
	}
	return n, nil
}
