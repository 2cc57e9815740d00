package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase gastos del negocio y sus categorías. Un gasto en efectivo sale de la caja del turno
// ACTIVE del operador y reduce el efectivo esperado al cierre.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Repositories) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos}
}

// RecordExpense registra un gasto.
func (uc *UseCase) RecordExpense(ctx context.Context, actor entity.Actor, in dto.RecordExpenseRequest) (*dto.ExpenseResponse, error) {
	if !actor.Can(entity.PermExpensesRecord) {
		return nil, domain.ErrPermissionDenied
	}
	method := entity.PaymentMethod(strings.ToUpper(strings.TrimSpace(in.Method)))
	v := entity.ValidateMethod(method, in.BankName, in.TransactionRef)
	if !in.Amount.IsPositive() {
		v.Add("amount", "debe ser mayor que cero")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "requerida")
	}
	if in.CategoryID == "" {
		v.Add("category_id", "requerida")
	}
	now := time.Now()
	date := now
	if in.Date != "" {
		d, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
		if err != nil {
			v.Add("date", "formato esperado YYYY-MM-DD")
		} else {
			date = d
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	e := &entity.Expense{
		ID:          uuid.New().String(),
		Date:        date,
		CategoryID:  in.CategoryID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Method:      method,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
	}
	if method.RequiresBankReference() {
		e.BankName = strings.TrimSpace(in.BankName)
		e.TransactionRef = strings.TrimSpace(in.TransactionRef)
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		cat, err := repos.Expenses.GetCategory(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil || !cat.Active {
			return domain.Invalid("category_id", "categoría inexistente o inactiva")
		}
		if method == entity.PaymentMethodCash {
			active, err := shift.RequireActiveShift(ctx, repos.Shifts, actor.UserID)
			if err != nil {
				return err
			}
			e.ShiftID = &active.ID
		}
		return repos.Expenses.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// ListExpenses gastos entre from y to (YYYY-MM-DD, ambos inclusive), más recientes primero.
func (uc *UseCase) ListExpenses(ctx context.Context, from, to string, page dto.PageRequest) ([]dto.ExpenseResponse, error) {
	page.DefaultPage()
	var (
		v          domain.Violations
		fromT, toT *time.Time
	)
	if from != "" {
		d, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			v.Add("from", "formato esperado YYYY-MM-DD")
		} else {
			fromT = &d
		}
	}
	if to != "" {
		d, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			v.Add("to", "formato esperado YYYY-MM-DD")
		} else {
			end := d.AddDate(0, 0, 1)
			toT = &end
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	list, err := uc.repos.Expenses.List(ctx, fromT, toT, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

// CreateCategory alta de categoría de gasto.
func (uc *UseCase) CreateCategory(ctx context.Context, actor entity.Actor, in dto.ExpenseCategoryRequest) (*dto.ExpenseCategoryResponse, error) {
	if !actor.Can(entity.PermExpensesRecord) {
		return nil, domain.ErrPermissionDenied
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	c := &entity.ExpenseCategory{ID: uuid.New().String(), Name: name, Active: true}
	if err := uc.repos.Expenses.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ExpenseCategoryResponse{ID: c.ID, Name: c.Name, Active: c.Active}, nil
}

// ListCategories categorías de gasto ordenadas por nombre.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.ExpenseCategoryResponse, error) {
	list, err := uc.repos.Expenses.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseCategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ExpenseCategoryResponse{ID: c.ID, Name: c.Name, Active: c.Active})
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:             e.ID,
		Date:           e.Date,
		CategoryID:     e.CategoryID,
		Description:    e.Description,
		Amount:         e.Amount,
		Method:         string(e.Method),
		BankName:       e.BankName,
		TransactionRef: e.TransactionRef,
		ShiftID:        e.ShiftID,
		CreatedBy:      e.CreatedBy,
	}
}
