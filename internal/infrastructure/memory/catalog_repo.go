package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/pkg/textnorm"
)

type productRepo struct{ s *session }

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	st.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	st, done := r.s.read()
	defer done()
	p, ok := st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, productType entity.ProductType, limit, offset int) ([]*entity.Product, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.Product
	for _, p := range st.products {
		if productType != "" && p.Type != productType {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type purchaseOrderRepo struct{ s *session }

func copyPurchaseOrder(po entity.PurchaseOrder) entity.PurchaseOrder {
	items := make([]*entity.PurchaseOrderItem, 0, len(po.Items))
	for _, it := range po.Items {
		c := *it
		items = append(items, &c)
	}
	po.Items = items
	return po
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.purchaseOrders[po.ID]; ok {
		return domain.ErrDuplicate
	}
	st.purchaseOrders[po.ID] = copyPurchaseOrder(*po)
	return nil
}

func (r *purchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.purchaseOrders[po.ID]; !ok {
		return domain.ErrNotFound
	}
	st.purchaseOrders[po.ID] = copyPurchaseOrder(*po)
	return nil
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	st, done := r.s.read()
	defer done()
	po, ok := st.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	c := copyPurchaseOrder(po)
	return &c, nil
}

func (r *purchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseOrderRepo) List(ctx context.Context, status entity.PurchaseStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.PurchaseOrder
	for _, po := range st.purchaseOrders {
		if status != "" && po.Status != status {
			continue
		}
		c := copyPurchaseOrder(po)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return page(out, limit, offset), nil
}

type expenseRepo struct{ s *session }

func (r *expenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	st, done := r.s.write()
	defer done()
	st.expenses = append(st.expenses, *e)
	return nil
}

func (r *expenseRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.Expense
	for _, e := range st.expenses {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && !e.Date.Before(*to) {
			continue
		}
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, limit, offset), nil
}

func (r *expenseRepo) SumByShift(ctx context.Context, shiftID string, method entity.PaymentMethod) (decimal.Decimal, error) {
	st, done := r.s.read()
	defer done()
	total := decimal.Zero
	for _, e := range st.expenses {
		if e.ShiftID != nil && *e.ShiftID == shiftID && e.Method == method {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *expenseRepo) CreateCategory(ctx context.Context, c *entity.ExpenseCategory) error {
	st, done := r.s.write()
	defer done()
	for _, other := range st.categories {
		if strings.EqualFold(other.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	st.categories[c.ID] = *c
	return nil
}

func (r *expenseRepo) GetCategory(ctx context.Context, id string) (*entity.ExpenseCategory, error) {
	st, done := r.s.read()
	defer done()
	c, ok := st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *expenseRepo) ListCategories(ctx context.Context) ([]*entity.ExpenseCategory, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.ExpenseCategory
	for _, c := range st.categories {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type patientRepo struct{ s *session }

// patientMatches q ya viene normalizado con textnorm.Fold.
func patientMatches(p entity.Patient, q string) bool {
	return strings.Contains(textnorm.SearchKey(p.FullName, p.Phone, p.DocumentID), q)
}

func (r *patientRepo) Create(ctx context.Context, p *entity.Patient) error {
	st, done := r.s.write()
	defer done()
	if p.DocumentID != "" {
		for _, other := range st.patients {
			if other.DocumentID == p.DocumentID {
				return domain.ErrDuplicate
			}
		}
	}
	st.patients[p.ID] = *p
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	st, done := r.s.read()
	defer done()
	p, ok := st.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *patientRepo) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Patient, error) {
	st, done := r.s.read()
	defer done()
	q := textnorm.Fold(query)
	var out []*entity.Patient
	for _, p := range st.patients {
		if q == "" || patientMatches(p, q) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return page(out, limit, offset), nil
}

type userRepo struct{ s *session }

func copyUser(u entity.User) entity.User {
	u.Permissions = slices.Clone(u.Permissions)
	return u
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	st, done := r.s.write()
	defer done()
	for _, other := range st.users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	st.users[u.ID] = copyUser(*u)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	st, done := r.s.read()
	defer done()
	u, ok := st.users[id]
	if !ok {
		return nil, nil
	}
	c := copyUser(u)
	return &c, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	st, done := r.s.read()
	defer done()
	for _, u := range st.users {
		if strings.EqualFold(u.Email, email) {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(ctx context.Context, u *entity.User) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	st.users[u.ID] = copyUser(*u)
	return nil
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.User
	for _, u := range st.users {
		c := copyUser(u)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}
