package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

// PurchaseUseCase órdenes de compra a proveedor: alta, recepción (total o parcial) y anulación.
type PurchaseUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	log      *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner ports.TxRunner, repos repository.Repositories, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, repos: repos, log: log}
}

// Create registra una orden de compra PENDING.
func (uc *PurchaseUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if !actor.Can(entity.PermPurchasesManage) {
		return nil, domain.ErrPermissionDenied
	}
	var v domain.Violations
	if strings.TrimSpace(in.Supplier) == "" {
		v.Add("supplier", "requerido")
	}
	if len(in.Items) == 0 {
		v.Add("items", "debe tener al menos una línea")
	}
	for i, line := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if line.InventoryItemID == "" {
			v.Add(field+".inventory_item_id", "requerido")
		}
		if line.Quantity <= 0 {
			v.Add(field+".quantity", "debe ser mayor que cero")
		}
		if line.UnitCost.IsNegative() {
			v.Add(field+".unit_cost", "no puede ser negativo")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		Supplier:  strings.TrimSpace(in.Supplier),
		OrderDate: now,
		Status:    entity.PurchaseStatusPending,
		Notes:     in.Notes,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		po.Items = nil
		var missing domain.Violations
		for i, line := range in.Items {
			item, err := repos.Items.GetByID(ctx, line.InventoryItemID)
			if err != nil {
				return err
			}
			if item == nil {
				missing.Add(fmt.Sprintf("items[%d].inventory_item_id", i), "ítem de inventario inexistente")
				continue
			}
			po.Items = append(po.Items, &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				InventoryItemID: item.ID,
				QuantityOrdered: line.Quantity,
				UnitCost:        line.UnitCost,
				Status:          entity.PurchaseStatusPending,
			})
		}
		if err := missing.Err(); err != nil {
			return err
		}
		return repos.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// Receive registra la recepción de una o varias líneas: suma existencias, recalcula el costo
// promedio y avanza el estado de línea y cabecera (PARTIAL / RECEIVED), todo en una transacción.
func (uc *PurchaseUseCase) Receive(ctx context.Context, actor entity.Actor, id string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if !actor.Can(entity.PermPurchasesManage) {
		return nil, domain.ErrPermissionDenied
	}
	quantities := make(map[string]int, len(in.Items))
	for _, line := range in.Items {
		quantities[line.ItemID] += line.Quantity
	}
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		po, err = repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := po.Receive(quantities, now); err != nil {
			return err
		}
		for lineID, qty := range quantities {
			line := po.Item(lineID)
			cost := line.UnitCost
			if err := ReceiveInTx(ctx, repos, MovementInput{
				ItemID:        line.InventoryItemID,
				Quantity:      qty,
				UnitCost:      &cost,
				TransactionID: po.ID,
				UserID:        actor.UserID,
				Reason:        "recepción " + po.Supplier,
				Now:           now,
			}); err != nil {
				return err
			}
		}
		return repos.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_order_id", po.ID).Str("status", string(po.Status)).Msg("recepción de compra")
	return toPurchaseOrderResponse(po), nil
}

// Cancel anula una orden de compra sin recepciones.
func (uc *PurchaseUseCase) Cancel(ctx context.Context, actor entity.Actor, id string) (*dto.PurchaseOrderResponse, error) {
	if !actor.Can(entity.PermPurchasesManage) {
		return nil, domain.ErrPermissionDenied
	}
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		po, err = repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if err := po.Cancel(time.Now()); err != nil {
			return err
		}
		return repos.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// Get obtiene una orden de compra con sus líneas.
func (uc *PurchaseUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseOrderResponse(po), nil
}

// List órdenes de compra, opcionalmente filtradas por estado.
func (uc *PurchaseUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.PurchaseOrders.List(ctx, entity.PurchaseStatus(strings.ToUpper(status)), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, *toPurchaseOrderResponse(po))
	}
	return out, nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			InventoryItemID:  it.InventoryItemID,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			Status:           string(it.Status),
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:        po.ID,
		Supplier:  po.Supplier,
		OrderDate: po.OrderDate,
		Status:    string(po.Status),
		Notes:     po.Notes,
		CreatedBy: po.CreatedBy,
		Items:     items,
	}
}
