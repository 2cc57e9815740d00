package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

type shiftRepo struct{ s *session }

func (r *shiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	st, done := r.s.write()
	defer done()
	if shift.Status.Open() {
		for _, other := range st.shifts {
			if other.OperatorID == shift.OperatorID && other.Status.Open() {
				return domain.ErrShiftAlreadyActive
			}
		}
	}
	if _, ok := st.shifts[shift.ID]; ok {
		return domain.ErrDuplicate
	}
	st.shifts[shift.ID] = *shift
	return nil
}

func (r *shiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	st, done := r.s.write()
	defer done()
	if _, ok := st.shifts[shift.ID]; !ok {
		return domain.ErrNotFound
	}
	st.shifts[shift.ID] = *shift
	return nil
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	st, done := r.s.read()
	defer done()
	sh, ok := st.shifts[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (r *shiftRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shift, error) {
	return r.GetByID(ctx, id)
}

func (r *shiftRepo) GetOpenByOperator(ctx context.Context, operatorID string) (*entity.Shift, error) {
	st, done := r.s.read()
	defer done()
	for _, sh := range st.shifts {
		if sh.OperatorID == operatorID && sh.Status.Open() {
			return &sh, nil
		}
	}
	return nil, nil
}

// las transacciones del store ya están serializadas
func (r *shiftRepo) GetOpenByOperatorForShare(ctx context.Context, operatorID string) (*entity.Shift, error) {
	return r.GetOpenByOperator(ctx, operatorID)
}

func (r *shiftRepo) ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.Shift, error) {
	st, done := r.s.read()
	defer done()
	var out []*entity.Shift
	for _, sh := range st.shifts {
		if operatorID == "" || sh.OperatorID == operatorID {
			out = append(out, &sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return page(out, limit, offset), nil
}
