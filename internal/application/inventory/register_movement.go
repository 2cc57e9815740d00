package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	inv "github.com/jhoicas/Optica-api/internal/domain/inventory"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/metrics"
)

// MovementInput datos de un movimiento aplicado dentro de una transacción del caller.
// Quantity es siempre positiva; el tipo decide el signo.
type MovementInput struct {
	ItemID        string
	Quantity      int
	UnitCost      *decimal.Decimal // solo RECEIVE; nil = costo actual del ítem
	TransactionID string
	UserID        string
	Reason        string
	Now           time.Time
}

// DeductInTx salida por venta: bloquea la fila (GetForUpdate), verifica existencia, resta y
// registra el movimiento SALE. ctx propaga la transacción del caller.
func DeductInTx(ctx context.Context, repos repository.Repositories, in MovementInput) error {
	return applyMovement(ctx, repos, entity.MovementTypeSale, in)
}

// RestockInTx reingreso de unidades vendidas (abandono o edición de orden).
func RestockInTx(ctx context.Context, repos repository.Repositories, in MovementInput) error {
	return applyMovement(ctx, repos, entity.MovementTypeRestock, in)
}

// ReceiveInTx entrada por orden de compra: recalcula el costo promedio ponderado.
func ReceiveInTx(ctx context.Context, repos repository.Repositories, in MovementInput) error {
	return applyMovement(ctx, repos, entity.MovementTypeReceive, in)
}

func applyMovement(ctx context.Context, repos repository.Repositories, movType string, in MovementInput) error {
	if in.Quantity <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	// Bloquea la fila del ítem para evitar condiciones de carrera
	item, err := repos.Items.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	delta := in.Quantity
	unitCost := item.CostPrice
	switch movType {
	case entity.MovementTypeSale:
		if item.QuantityOnHand < in.Quantity {
			return domain.ErrInsufficientStock
		}
		delta = -in.Quantity
	case entity.MovementTypeReceive:
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
			newCost := inv.WeightedAverageCost(item.QuantityOnHand, item.CostPrice, in.Quantity, unitCost)
			if err := repos.Items.UpdateCost(ctx, item.ID, newCost); err != nil {
				return err
			}
		}
	}
	if err := repos.Items.UpdateQuantity(ctx, item.ID, item.QuantityOnHand+delta); err != nil {
		return err
	}
	return recordMovement(ctx, repos, item.ID, movType, delta, unitCost, in)
}

// AdjustInTx ajuste manual con delta firmado; nunca deja la existencia en negativo.
func AdjustInTx(ctx context.Context, repos repository.Repositories, delta int, in MovementInput) (*entity.InventoryItem, error) {
	item, err := repos.Items.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.QuantityOnHand+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	item.QuantityOnHand += delta
	if err := repos.Items.UpdateQuantity(ctx, item.ID, item.QuantityOnHand); err != nil {
		return nil, err
	}
	if err := recordMovement(ctx, repos, item.ID, entity.MovementTypeAdjustment, delta, item.CostPrice, in); err != nil {
		return nil, err
	}
	return item, nil
}

func recordMovement(ctx context.Context, repos repository.Repositories, itemID, movType string, qty int, unitCost decimal.Decimal, in MovementInput) error {
	mov := &entity.InventoryMovement{
		ID:              uuid.New().String(),
		TransactionID:   in.TransactionID,
		InventoryItemID: itemID,
		Type:            movType,
		Quantity:        qty,
		UnitCost:        unitCost,
		Reason:          in.Reason,
		Date:            in.Now,
		CreatedBy:       in.UserID,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return err
	}
	metrics.StockMovements.WithLabelValues(movType).Inc()
	return nil
}
