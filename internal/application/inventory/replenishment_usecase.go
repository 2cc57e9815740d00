package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	inv "github.com/jhoicas/Optica-api/internal/domain/inventory"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir de los ítems bajo su mínimo.
type ReplenishmentUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.InventoryItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

// ListLowStock devuelve los ítems activos en o bajo su mínimo con la cantidad sugerida de
// pedido (llevar la existencia al doble del mínimo) y su costo estimado.
func (uc *ReplenishmentUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		qty := inv.SuggestedReorderQty(it.QuantityOnHand, it.MinStockLevel)
		out = append(out, dto.LowStockItemDTO{
			InventoryItemID:    it.ID,
			SKU:                it.SKU,
			Name:               it.Name,
			QuantityOnHand:     it.QuantityOnHand,
			MinStockLevel:      it.MinStockLevel,
			SuggestedOrderQty:  qty,
			EstimatedOrderCost: it.CostPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	// Ordenar: mayor déficit bajo el mínimo primero; luego sin existencia; luego SKU.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		defA := a.MinStockLevel - a.QuantityOnHand
		defB := b.MinStockLevel - b.QuantityOnHand
		if defA != defB {
			return defA > defB
		}
		if (a.QuantityOnHand == 0) != (b.QuantityOnHand == 0) {
			return a.QuantityOnHand == 0
		}
		return a.SKU < b.SKU
	})

	// Asignar prioridad (1 = más urgente)
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
