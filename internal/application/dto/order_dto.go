package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// OrderItemRequest línea de orden. Kind: STOCK | SERVICE | CUSTOM_LENS | CUSTOM_QUOTE.
type OrderItemRequest struct {
	Kind            string               `json:"kind"`
	InventoryItemID string               `json:"inventory_item_id,omitempty"`
	ProductID       string               `json:"product_id,omitempty"`
	Description     string               `json:"description,omitempty"`
	Prescription    *entity.Prescription `json:"prescription,omitempty"`
	LensAttributes  map[string]string    `json:"lens_attributes,omitempty"`
	Quantity        int                  `json:"quantity"`
	UnitPrice       *decimal.Decimal     `json:"unit_price,omitempty"` // vacío = precio de catálogo (STOCK/SERVICE)
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	PatientID *string            `json:"patient_id,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	Discount  decimal.Decimal    `json:"discount"`
	Items     []OrderItemRequest `json:"items"`
}

// UpdateOrderItemRequest body para PUT /api/orders/:id/items/:itemId.
type UpdateOrderItemRequest struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ApplyDiscountRequest body para PUT /api/orders/:id/discount.
type ApplyDiscountRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

// ChangeStatusRequest body para PUT /api/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AbandonOrderRequest body para POST /api/orders/:id/abandon.
type AbandonOrderRequest struct {
	RestockItemIDs []string `json:"restock_item_ids"`
}

// FindOrdersRequest filtros de GET /api/orders (fechas YYYY-MM-DD).
type FindOrdersRequest struct {
	From    string `query:"from"`
	To      string `query:"to"`
	Status  string `query:"status"`
	Patient string `query:"patient"`
	PageRequest
}

// OrderItemResponse salida de una línea.
type OrderItemResponse struct {
	ID              string               `json:"id"`
	Kind            string               `json:"kind"`
	InventoryItemID string               `json:"inventory_item_id,omitempty"`
	ProductID       string               `json:"product_id,omitempty"`
	Description     string               `json:"description,omitempty"`
	Prescription    *entity.Prescription `json:"prescription,omitempty"`
	LensAttributes  map[string]string    `json:"lens_attributes,omitempty"`
	Quantity        int                  `json:"quantity"`
	UnitPrice       decimal.Decimal      `json:"unit_price"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Restocked       bool                 `json:"restocked"`
}

// OrderResponse salida de una orden con líneas y pagos.
type OrderResponse struct {
	ID         string              `json:"id"`
	PatientID  *string             `json:"patient_id,omitempty"`
	OrderDate  time.Time           `json:"order_date"`
	Status     string              `json:"status"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"discount"`
	Total      decimal.Decimal     `json:"total"`
	AmountPaid decimal.Decimal     `json:"amount_paid"`
	BalanceDue decimal.Decimal     `json:"balance_due"`
	CreatedBy  string              `json:"created_by"`
	ShiftID    string              `json:"shift_id"`
	Notes      string              `json:"notes,omitempty"`
	Items      []OrderItemResponse `json:"items,omitempty"`
	Payments   []PaymentResponse   `json:"payments,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse = ListResponse[OrderResponse]

// RecordPaymentRequest body para POST /api/orders/:id/payments.
type RecordPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	BankName       string          `json:"bank_name,omitempty"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	BankName       string          `json:"bank_name,omitempty"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	ReceivedBy     string          `json:"received_by"`
	ShiftID        string          `json:"shift_id"`
}
