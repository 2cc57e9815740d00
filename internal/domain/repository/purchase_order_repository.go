package repository

import (
	"context"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	// Update persiste estado de cabecera y cantidades/estado de cada línea.
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, status entity.PurchaseStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
}
