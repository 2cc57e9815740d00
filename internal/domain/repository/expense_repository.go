package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos y sus categorías.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Expense, error)
	// SumByShift total de gastos del turno con el medio indicado.
	SumByShift(ctx context.Context, shiftID string, method entity.PaymentMethod) (decimal.Decimal, error)
	CreateCategory(ctx context.Context, category *entity.ExpenseCategory) error
	GetCategory(ctx context.Context, id string) (*entity.ExpenseCategory, error)
	ListCategories(ctx context.Context) ([]*entity.ExpenseCategory, error)
}
