package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeSale       = "SALE"       // salida por línea de orden de venta
	MovementTypeRestock    = "RESTOCK"    // reingreso por abandono / edición de orden
	MovementTypeReceive    = "RECEIVE"    // recepción de orden de compra
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual
)

// InventoryMovement registro inmutable de cada cambio de existencias de un InventoryItem.
type InventoryMovement struct {
	ID              string
	TransactionID   string // orden de venta, orden de compra o ajuste que originó el movimiento
	InventoryItemID string
	Type            string
	Quantity        int // positivo entrada, negativo salida
	UnitCost        decimal.Decimal
	Reason          string
	Date            time.Time
	CreatedBy       string
}
