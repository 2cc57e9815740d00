package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error)
	// SumByShift total de pagos del turno con el medio indicado.
	SumByShift(ctx context.Context, shiftID string, method entity.PaymentMethod) (decimal.Decimal, error)
}
