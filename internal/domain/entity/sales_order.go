package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
)

// OrderStatus estado de una orden de venta.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusAbandoned      OrderStatus = "ABANDONED"
)

// orderTransitions tabla cerrada de transiciones permitidas.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled, OrderStatusAbandoned},
	OrderStatusConfirmed:      {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusReadyForPickup, OrderStatusCancelled},
	OrderStatusReadyForPickup: {OrderStatusCompleted, OrderStatusCancelled},
}

// Valid informa si el estado pertenece a la enumeración.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusReadyForPickup,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusAbandoned:
		return true
	}
	return false
}

// Terminal COMPLETED, CANCELLED y ABANDONED no admiten más cambios.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled || s == OrderStatusAbandoned
}

// CanTransitionTo informa si from -> to está en la tabla de transiciones.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Editable las líneas solo se modifican antes de entrar a producción.
func (s OrderStatus) Editable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// SalesOrder orden de venta con sus líneas.
// Invariantes: Total = max(0, Subtotal - Discount); BalanceDue = max(0, Total - AmountPaid);
// Discount <= Subtotal; AmountPaid <= Total.
type SalesOrder struct {
	ID         string
	PatientID  *string
	OrderDate  time.Time
	Status     OrderStatus
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	BalanceDue decimal.Decimal
	CreatedBy  string
	ShiftID    string
	Notes      string
	Items      []*SalesOrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Recalculate recomputa subtotales de línea, Subtotal, Total y BalanceDue.
func (o *SalesOrder) Recalculate() {
	subtotal := decimal.Zero
	for _, it := range o.Items {
		it.Recalculate()
		subtotal = subtotal.Add(it.Subtotal)
	}
	o.Subtotal = subtotal
	o.Total = nonNegative(o.Subtotal.Sub(o.Discount))
	o.BalanceDue = nonNegative(o.Total.Sub(o.AmountPaid))
}

// CheckTotals valida las invariantes de montos tras una mutación.
func (o *SalesOrder) CheckTotals() domain.Violations {
	var v domain.Violations
	if o.Discount.IsNegative() {
		v.Add("discount", "no puede ser negativo")
	}
	if o.Discount.GreaterThan(o.Subtotal) {
		v.Addf("discount", "no puede superar el subtotal (%s)", o.Subtotal.StringFixed(2))
	}
	if o.AmountPaid.GreaterThan(o.Total) {
		v.Addf("total", "quedaría por debajo de lo ya pagado (%s)", o.AmountPaid.StringFixed(2))
	}
	return v
}

// ApplyDiscount fija el descuento y recalcula. Aplicar el mismo valor dos veces es idempotente.
// Si la validación falla la orden queda intacta.
func (o *SalesOrder) ApplyDiscount(discount decimal.Decimal) error {
	prev := o.Discount
	o.Discount = discount
	o.Recalculate()
	if err := o.CheckTotals().Err(); err != nil {
		o.Discount = prev
		o.Recalculate()
		return err
	}
	return nil
}

// ApplyPayment suma un pago. amount debe ser > 0 y <= BalanceDue.
func (o *SalesOrder) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.Invalid("amount", "debe ser mayor que cero")
	}
	if amount.GreaterThan(o.BalanceDue) {
		return domain.Invalid("amount", "supera el saldo pendiente ("+o.BalanceDue.StringFixed(2)+")")
	}
	o.AmountPaid = o.AmountPaid.Add(amount)
	o.Recalculate()
	return nil
}

// TransitionTo aplica un cambio de estado según la tabla de transiciones.
func (o *SalesOrder) TransitionTo(to OrderStatus, now time.Time) error {
	if !o.Status.CanTransitionTo(to) {
		return domain.ErrInvalidStatusTransition
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// Item busca una línea por ID.
func (o *SalesOrder) Item(id string) *SalesOrderItem {
	for _, it := range o.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// RemoveItem quita la línea y devuelve la eliminada (nil si no existe).
func (o *SalesOrder) RemoveItem(id string) *SalesOrderItem {
	for i, it := range o.Items {
		if it.ID == id {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return it
		}
	}
	return nil
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
