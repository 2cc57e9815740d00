package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// OrderFilter criterios de búsqueda de órdenes de venta.
type OrderFilter struct {
	From         *time.Time
	To           *time.Time
	Status       entity.OrderStatus // vacío = todos
	PatientQuery string             // nombre, teléfono o documento (subcadena, sin distinguir mayúsculas)
	Limit        int
	Offset       int
}

// SalesOrderRepository define el puerto de persistencia para órdenes de venta y sus líneas.
type SalesOrderRepository interface {
	// Create persiste la cabecera y todas sus líneas.
	Create(ctx context.Context, order *entity.SalesOrder) error
	// Update persiste la cabecera (estado y montos).
	Update(ctx context.Context, order *entity.SalesOrder) error
	CreateItem(ctx context.Context, item *entity.SalesOrderItem) error
	UpdateItem(ctx context.Context, item *entity.SalesOrderItem) error
	DeleteItem(ctx context.Context, itemID string) error
	// GetByID devuelve la orden con sus líneas, o nil.
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetForUpdate igual que GetByID bloqueando la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	// Find devuelve órdenes (sin líneas) más recientes primero.
	Find(ctx context.Context, filter OrderFilter) ([]*entity.SalesOrder, error)
	CountByShift(ctx context.Context, shiftID string) (int, error)
}
