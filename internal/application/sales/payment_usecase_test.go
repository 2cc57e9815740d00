package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/domain"
)

func TestRecordPayment_OverpayLeavesOrderUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.startShift(t, f.cashier, "0")
	order := f.createOrder(t, f.stockLine(2, "50.00"))

	_, err := f.payments.RecordPayment(ctx, f.cashier, order.ID, dto.RecordPaymentRequest{Amount: dec("100.01"), Method: "CASH"})
	assert.Equal(t, []string{"amount"}, violationFields(t, err))

	details, err := f.orders.GetOrderDetails(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, details.AmountPaid.IsZero())
	assertDec(t, "100", details.BalanceDue)
	assert.Empty(t, details.Payments)
}

func TestRecordPayment_PartialPaymentsAccumulate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.startShift(t, f.cashier, "0")
	order := f.createOrder(t, f.stockLine(2, "50.00"))

	for _, amount := range []string{"30", "70"} {
		_, err := f.payments.RecordPayment(ctx, f.cashier, order.ID, dto.RecordPaymentRequest{Amount: dec(amount), Method: "CASH"})
		require.NoError(t, err)
	}
	_, err := f.payments.RecordPayment(ctx, f.cashier, order.ID, dto.RecordPaymentRequest{Amount: dec("0.01"), Method: "CASH"})
	assert.Contains(t, violationFields(t, err), "amount")

	list, err := f.payments.ListPayments(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRecordPayment_ValidatesAmountAndBankReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.startShift(t, f.cashier, "0")
	order := f.createOrder(t, f.stockLine(1, "50.00"))

	tests := []struct {
		name string
		req  dto.RecordPaymentRequest
		want []string
	}{
		{"monto cero", dto.RecordPaymentRequest{Amount: dec("0"), Method: "CASH"}, []string{"amount"}},
		{"tarjeta sin referencias", dto.RecordPaymentRequest{Amount: dec("10"), Method: "CARD"}, []string{"bank_name", "transaction_ref"}},
		{"cheque sin número", dto.RecordPaymentRequest{Amount: dec("10"), Method: "CHEQUE", BankName: "Bancolombia"}, []string{"transaction_ref"}},
		{"medio desconocido", dto.RecordPaymentRequest{Amount: dec("10"), Method: "BITCOIN"}, []string{"method"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.payments.RecordPayment(ctx, f.cashier, order.ID, tt.req)
			assert.ElementsMatch(t, tt.want, violationFields(t, err))
		})
	}

	pay, err := f.payments.RecordPayment(ctx, f.cashier, order.ID, dto.RecordPaymentRequest{
		Amount: dec("50"), Method: "bank_transfer", BankName: "Davivienda", TransactionRef: "TRX-991",
	})
	require.NoError(t, err)
	assert.Equal(t, "BANK_TRANSFER", pay.Method)
	assert.Equal(t, "TRX-991", pay.TransactionRef)
}

func TestRecordPayment_RequiresActiveShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.startShift(t, f.cashier, "0")
	order := f.createOrder(t, f.stockLine(1, "50.00"))
	_, err := f.ledger.EndShift(ctx, f.cashier, s.ID, dto.EndShiftRequest{ClosingFloat: dec("0")})
	require.NoError(t, err)

	_, err = f.payments.RecordPayment(ctx, f.cashier, order.ID, dto.RecordPaymentRequest{Amount: dec("10"), Method: "CASH"})
	assert.ErrorIs(t, err, domain.ErrNoActiveShift)
}

func TestRecordPayment_RejectedOnCancelledOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.startShift(t, f.cashier, "0")
	order := f.createOrder(t, f.stockLine(1, "50.00"))
	_, err := f.orders.ChangeStatus(ctx, f.cashier, order.ID, "CANCELLED")
	require.NoError(t, err)

	_, err = f.payments.RecordPayment(ctx, f.cashier, order.ID, dto.RecordPaymentRequest{Amount: dec("10"), Method: "CASH"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecordPayment_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	f.startShift(t, f.cashier, "0")

	_, err := f.payments.RecordPayment(context.Background(), f.cashier, "no-existe", dto.RecordPaymentRequest{Amount: dec("10"), Method: "CASH"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
