package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem existencia física vendible (armazón, lente de stock, accesorio).
// QuantityOnHand nunca es negativo.
type InventoryItem struct {
	ID             string
	ProductID      string
	SKU            string
	Name           string
	Brand          string
	Model          string
	Color          string
	Size           string
	QuantityOnHand int
	SellingPrice   decimal.Decimal
	CostPrice      decimal.Decimal
	MinStockLevel  int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock informa si la existencia está en o por debajo del mínimo configurado.
func (i *InventoryItem) LowStock() bool {
	return i.QuantityOnHand <= i.MinStockLevel
}
