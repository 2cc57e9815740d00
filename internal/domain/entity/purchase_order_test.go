package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

func newPO() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		Status: entity.PurchaseStatusPending,
		Items: []*entity.PurchaseOrderItem{
			{ID: "l1", QuantityOrdered: 10, Status: entity.PurchaseStatusPending},
			{ID: "l2", QuantityOrdered: 4, Status: entity.PurchaseStatusPending},
		},
	}
}

func TestPurchaseOrder_Receive(t *testing.T) {
	po := newPO()
	now := time.Now()

	require.NoError(t, po.Receive(map[string]int{"l1": 6}, now))
	assert.Equal(t, entity.PurchaseStatusPartial, po.Status)
	assert.Equal(t, entity.PurchaseStatusPartial, po.Item("l1").Status)
	assert.Equal(t, 4, po.Item("l1").Outstanding())

	err := po.Receive(map[string]int{"l1": 5, "l2": 4}, now)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 6, po.Item("l1").QuantityReceived, "nada se aplica si una línea falla")
	assert.Equal(t, 0, po.Item("l2").QuantityReceived)

	require.NoError(t, po.Receive(map[string]int{"l1": 4, "l2": 4}, now))
	assert.Equal(t, entity.PurchaseStatusReceived, po.Status)

	assert.ErrorIs(t, po.Receive(map[string]int{"l1": 1}, now), domain.ErrConflict)
	assert.ErrorIs(t, po.Cancel(now), domain.ErrConflict)
}

func TestPurchaseOrder_ReceiveValidation(t *testing.T) {
	po := newPO()
	err := po.Receive(map[string]int{"nope": 1}, time.Now())
	vs, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "items.nope", vs[0].Field)

	err = po.Receive(nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	po := newPO()
	require.NoError(t, po.Cancel(time.Now()))
	assert.Equal(t, entity.PurchaseStatusCancelled, po.Status)
	assert.ErrorIs(t, po.Receive(map[string]int{"l1": 1}, time.Now()), domain.ErrConflict)
}

func TestValidateMethod(t *testing.T) {
	assert.Empty(t, entity.ValidateMethod(entity.PaymentMethodCash, "", ""))
	assert.Len(t, entity.ValidateMethod(entity.PaymentMethodCheque, "", ""), 2)
	assert.Empty(t, entity.ValidateMethod(entity.PaymentMethodCard, "Banco Uno", "TX-1"))
	vs := entity.ValidateMethod("CRYPTO", "", "")
	require.Len(t, vs, 1)
	assert.Equal(t, "method", vs[0].Field)
}

func TestActor_Can(t *testing.T) {
	admin := entity.Actor{Role: entity.RoleAdmin}
	assert.True(t, admin.Can(entity.PermOrdersAbandon))

	cashier := entity.Actor{Role: entity.RoleCashier, Permissions: entity.DefaultPermissions(entity.RoleCashier)}
	assert.True(t, cashier.Can(entity.PermOrdersDiscount))
	assert.False(t, cashier.Can(entity.PermOrdersAbandon))
	assert.False(t, entity.ValidPermission("orders.delete"))
}
