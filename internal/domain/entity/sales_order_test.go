package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func orderWith(lines ...*entity.SalesOrderItem) *entity.SalesOrder {
	o := &entity.SalesOrder{Status: entity.OrderStatusPending, Items: lines}
	o.Recalculate()
	return o
}

func line(qty int, price string) *entity.SalesOrderItem {
	return &entity.SalesOrderItem{Kind: entity.LineKindCustomQuote, Description: "x", Quantity: qty, UnitPrice: dec(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Montos
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesOrder_Recalculate(t *testing.T) {
	o := orderWith(line(2, "50"), line(1, "30.50"))
	assert.True(t, dec("130.50").Equal(o.Subtotal))
	assert.True(t, dec("130.50").Equal(o.Total))
	assert.True(t, dec("130.50").Equal(o.BalanceDue))
	assert.True(t, dec("100").Equal(o.Items[0].Subtotal))
}

func TestSalesOrder_ApplyDiscount(t *testing.T) {
	o := orderWith(line(1, "100"))

	require.NoError(t, o.ApplyDiscount(dec("20")))
	require.NoError(t, o.ApplyDiscount(dec("20")))
	assert.True(t, dec("80").Equal(o.Total))

	err := o.ApplyDiscount(dec("150"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, dec("20").Equal(o.Discount), "la orden queda intacta")
	assert.True(t, dec("80").Equal(o.Total))

	err = o.ApplyDiscount(dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, o.ApplyDiscount(dec("100")))
	assert.True(t, o.Total.IsZero())
	assert.True(t, o.BalanceDue.IsZero())
}

func TestSalesOrder_ApplyPayment(t *testing.T) {
	o := orderWith(line(1, "100"))

	require.NoError(t, o.ApplyPayment(dec("40")))
	assert.True(t, dec("60").Equal(o.BalanceDue))

	assert.ErrorIs(t, o.ApplyPayment(dec("60.01")), domain.ErrInvalidInput)
	assert.ErrorIs(t, o.ApplyPayment(decimal.Zero), domain.ErrInvalidInput)
	assert.True(t, dec("40").Equal(o.AmountPaid))

	require.NoError(t, o.ApplyPayment(dec("60")))
	assert.True(t, o.BalanceDue.IsZero())

	err := o.ApplyDiscount(dec("1"))
	require.Error(t, err, "el total no puede quedar bajo lo pagado")
	vs, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "total", vs[0].Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderStatus_Transitions(t *testing.T) {
	allowed := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderStatusPending:        {entity.OrderStatusConfirmed, entity.OrderStatusCancelled, entity.OrderStatusAbandoned},
		entity.OrderStatusConfirmed:      {entity.OrderStatusProcessing, entity.OrderStatusCancelled},
		entity.OrderStatusProcessing:     {entity.OrderStatusReadyForPickup, entity.OrderStatusCancelled},
		entity.OrderStatusReadyForPickup: {entity.OrderStatusCompleted, entity.OrderStatusCancelled},
	}
	all := []entity.OrderStatus{
		entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusProcessing,
		entity.OrderStatusReadyForPickup, entity.OrderStatusCompleted, entity.OrderStatusCancelled,
		entity.OrderStatusAbandoned,
	}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	for _, s := range []entity.OrderStatus{entity.OrderStatusCompleted, entity.OrderStatusCancelled, entity.OrderStatusAbandoned} {
		assert.True(t, s.Terminal())
	}
	assert.False(t, entity.OrderStatus("SHIPPED").Valid())
}

func TestSalesOrder_TransitionTo(t *testing.T) {
	o := orderWith(line(1, "10"))
	now := time.Now()

	require.NoError(t, o.TransitionTo(entity.OrderStatusConfirmed, now))
	err := o.TransitionTo(entity.OrderStatusCompleted, now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.OrderStatusConfirmed, o.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesOrderItem_Validate(t *testing.T) {
	tests := []struct {
		name   string
		item   entity.SalesOrderItem
		fields []string
	}{
		{
			name:   "stock valida",
			item:   entity.SalesOrderItem{Kind: entity.LineKindStock, InventoryItemID: "i1", Quantity: 1, UnitPrice: dec("10")},
			fields: nil,
		},
		{
			name:   "stock con descripción",
			item:   entity.SalesOrderItem{Kind: entity.LineKindStock, InventoryItemID: "i1", Description: "x", Quantity: 1},
			fields: []string{"kind"},
		},
		{
			name:   "servicio sin producto y cantidad cero",
			item:   entity.SalesOrderItem{Kind: entity.LineKindService},
			fields: []string{"quantity", "product_id"},
		},
		{
			name:   "lente sin receta",
			item:   entity.SalesOrderItem{Kind: entity.LineKindCustomLens, Description: "progresivo", Quantity: 1},
			fields: []string{"prescription"},
		},
		{
			name: "lente con eje fuera de rango",
			item: entity.SalesOrderItem{
				Kind: entity.LineKindCustomLens, Description: "monofocal", Quantity: 1,
				Prescription: &entity.Prescription{Right: entity.EyeRx{Axis: 200}},
			},
			fields: []string{"prescription.right.axis"},
		},
		{
			name:   "tipo desconocido",
			item:   entity.SalesOrderItem{Kind: "GIFT", Quantity: 1},
			fields: []string{"kind"},
		},
		{
			name:   "precio negativo",
			item:   entity.SalesOrderItem{Kind: entity.LineKindCustomQuote, Description: "x", Quantity: 1, UnitPrice: dec("-5")},
			fields: []string{"unit_price"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, v := range tt.item.Validate() {
				got = append(got, v.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestSalesOrder_RemoveItem(t *testing.T) {
	a, b := line(1, "10"), line(1, "20")
	a.ID, b.ID = "a", "b"
	o := orderWith(a, b)

	removed := o.RemoveItem("a")
	require.NotNil(t, removed)
	assert.Equal(t, "a", removed.ID)
	assert.Nil(t, o.RemoveItem("zz"))
	o.Recalculate()
	assert.True(t, dec("20").Equal(o.Subtotal))
}
