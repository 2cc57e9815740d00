package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos y categorías sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expenses (id, date, category_id, description, amount, method, bank_name, transaction_ref,
			shift_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.Date, e.CategoryID, e.Description, e.Amount, e.Method, e.BankName, e.TransactionRef,
		e.ShiftID, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List gastos en [from, to), más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, date, category_id, description, amount, method, bank_name, transaction_ref,
			shift_id, created_by, created_at
		FROM expenses WHERE true`
	var args []any
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}
	query, args = paginate(query+" ORDER BY date DESC", args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.CategoryID, &e.Description, &e.Amount, &e.Method,
			&e.BankName, &e.TransactionRef, &e.ShiftID, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByShift total de gastos del turno con el medio indicado.
func (r *ExpenseRepo) SumByShift(ctx context.Context, shiftID string, method entity.PaymentMethod) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE shift_id = $1 AND method = $2`,
		shiftID, method,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// CreateCategory nombre duplicado -> domain.ErrDuplicate.
func (r *ExpenseRepo) CreateCategory(ctx context.Context, c *entity.ExpenseCategory) error {
	_, err := r.q.Exec(ctx, `INSERT INTO expense_categories (id, name, active) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense category: %w", err)
	}
	return nil
}

// GetCategory obtiene una categoría por ID.
func (r *ExpenseRepo) GetCategory(ctx context.Context, id string) (*entity.ExpenseCategory, error) {
	var c entity.ExpenseCategory
	err := r.q.QueryRow(ctx, `SELECT id, name, active FROM expense_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense category: %w", err)
	}
	return &c, nil
}

// ListCategories categorías ordenadas por nombre.
func (r *ExpenseRepo) ListCategories(ctx context.Context) ([]*entity.ExpenseCategory, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, active FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseCategory
	for rows.Next() {
		var c entity.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("scan expense category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
