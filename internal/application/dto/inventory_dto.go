package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory/items.
type CreateInventoryItemRequest struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Color          string          `json:"color,omitempty"`
	Size           string          `json:"size,omitempty"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	MinStockLevel  int             `json:"min_stock_level"`
}

// InventoryItemResponse salida de un ítem de inventario.
type InventoryItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Color          string          `json:"color,omitempty"`
	Size           string          `json:"size,omitempty"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	MinStockLevel  int             `json:"min_stock_level"`
	Active         bool            `json:"active"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AdjustStockRequest body para POST /api/inventory/items/:id/adjustments.
// Delta positivo suma, negativo resta.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// LowStockItemDTO ítem en o por debajo de su mínimo, con cantidad sugerida de reposición.
type LowStockItemDTO struct {
	InventoryItemID    string          `json:"inventory_item_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	QuantityOnHand     int             `json:"quantity_on_hand"`
	MinStockLevel      int             `json:"min_stock_level"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // 2*Min - OnHand
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * CostPrice
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Reason        string          `json:"reason,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by"`
}

// PurchaseOrderItemRequest línea de una orden de compra.
type PurchaseOrderItemRequest struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	Supplier string                     `json:"supplier"`
	Notes    string                     `json:"notes,omitempty"`
	Items    []PurchaseOrderItemRequest `json:"items"`
}

// ReceiveLineRequest cantidad recibida de una línea.
type ReceiveLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveLineRequest `json:"items"`
}

// PurchaseOrderItemResponse salida de una línea de compra.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	InventoryItemID  string          `json:"inventory_item_id"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Status           string          `json:"status"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID        string                      `json:"id"`
	Supplier  string                      `json:"supplier"`
	OrderDate time.Time                   `json:"order_date"`
	Status    string                      `json:"status"`
	Notes     string                      `json:"notes,omitempty"`
	CreatedBy string                      `json:"created_by"`
	Items     []PurchaseOrderItemResponse `json:"items"`
}
