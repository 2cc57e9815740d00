package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, date, amount, method, bank_name, transaction_ref, received_by, shift_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrderID, p.Date, p.Amount, p.Method, p.BankName, p.TransactionRef, p.ReceivedBy, p.ShiftID,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByOrder pagos de la orden en orden cronológico.
func (r *PaymentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, order_id, date, amount, method, bank_name, transaction_ref, received_by, shift_id
		FROM payments WHERE order_id = $1 ORDER BY date`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Date, &p.Amount, &p.Method, &p.BankName,
			&p.TransactionRef, &p.ReceivedBy, &p.ShiftID); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByShift total cobrado en el turno con el medio indicado.
func (r *PaymentRepo) SumByShift(ctx context.Context, shiftID string, method entity.PaymentMethod) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE shift_id = $1 AND method = $2`,
		shiftID, method,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}
