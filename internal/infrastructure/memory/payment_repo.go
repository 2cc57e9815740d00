package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

type paymentRepo struct{ s *session }

func (r *paymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	st, done := r.s.write()
	defer done()
	st.payments = append(st.payments, *p)
	return nil
}

func (r *paymentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.Payment
	for _, p := range st.payments {
		if p.OrderID == orderID {
			out = append(out, &p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *paymentRepo) SumByShift(ctx context.Context, shiftID string, method entity.PaymentMethod) (decimal.Decimal, error) {
	st, done := r.s.read()
	defer done()
	total := decimal.Zero
	for _, p := range st.payments {
		if p.ShiftID == shiftID && p.Method == method {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}
