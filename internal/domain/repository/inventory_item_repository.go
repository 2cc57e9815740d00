package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto para existencias.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// UpdateQuantity fija QuantityOnHand.
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	// UpdateCost fija el costo promedio ponderado.
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.InventoryItem, error)
	// ListLowStock ítems activos con QuantityOnHand <= MinStockLevel, mayor déficit primero.
	ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error)
}
