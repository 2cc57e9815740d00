package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/logger"
	"github.com/jhoicas/Optica-api/pkg/metrics"
)

// PaymentUseCase registra abonos contra órdenes de venta sin permitir pagar más que el total.
type PaymentUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	log      *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner ports.TxRunner, repos repository.Repositories, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, repos: repos, log: log}
}

// RecordPayment aplica un pago: 0 < amount <= saldo; medios bancarios exigen banco y referencia.
// El pago queda sellado con quien lo recibe y su turno ACTIVE.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, actor entity.Actor, orderID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	method := entity.PaymentMethod(strings.ToUpper(strings.TrimSpace(in.Method)))
	v := entity.ValidateMethod(method, in.BankName, in.TransactionRef)
	if !in.Amount.IsPositive() {
		v.Add("amount", "debe ser mayor que cero")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var payment *entity.Payment
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		active, err := shift.RequireActiveShift(ctx, repos.Shifts, actor.UserID)
		if err != nil {
			return err
		}
		order, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if order.Status == entity.OrderStatusCancelled || order.Status == entity.OrderStatusAbandoned {
			return fmt.Errorf("%w: no se reciben pagos en una orden %s", domain.ErrConflict, order.Status)
		}
		if err := order.ApplyPayment(in.Amount); err != nil {
			return err
		}
		now := time.Now()
		order.UpdatedAt = now
		payment = &entity.Payment{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			Date:       now,
			Amount:     in.Amount,
			Method:     method,
			ReceivedBy: actor.UserID,
			ShiftID:    active.ID,
		}
		if method.RequiresBankReference() {
			payment.BankName = strings.TrimSpace(in.BankName)
			payment.TransactionRef = strings.TrimSpace(in.TransactionRef)
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return repos.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	metrics.PaymentsAmount.WithLabelValues(string(method)).Add(payment.Amount.InexactFloat64())
	uc.log.ForOperator(payment.ReceivedBy, payment.ShiftID).Info().Str("order_id", orderID).Str("payment_id", payment.ID).
		Str("method", string(method)).Str("amount", payment.Amount.StringFixed(2)).Msg("pago registrado")
	return toPaymentResponse(payment), nil
}

// ListPayments pagos de una orden en orden cronológico.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, orderID string) ([]dto.PaymentResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Payments.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}
