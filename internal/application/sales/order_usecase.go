package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/inventory"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/logger"
	"github.com/jhoicas/Optica-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

// OrderUseCase ciclo de vida de la orden de venta: alta, edición de líneas, descuento,
// cambios de estado y abandono con reingreso opcional de existencias.
// Cada operación que muta corre en una transacción con la orden bloqueada.
type OrderUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner ports.TxRunner, repos repository.Repositories, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repos: repos, log: log}
}

// CreateOrder crea una orden PENDING ligada al turno ACTIVE del creador. Valida todas las líneas
// y devuelve todas las violaciones juntas. Las líneas STOCK descuentan existencias.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !in.Discount.IsZero() && !actor.Can(entity.PermOrdersDiscount) {
		return nil, domain.ErrPermissionDenied
	}
	now := time.Now()
	order := &entity.SalesOrder{
		ID:        uuid.New().String(),
		PatientID: in.PatientID,
		OrderDate: now,
		Status:    entity.OrderStatusPending,
		CreatedBy: actor.UserID,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		active, err := shift.RequireActiveShift(ctx, repos.Shifts, actor.UserID)
		if err != nil {
			return err
		}
		order.ShiftID = active.ID
		order.Items = nil

		var v domain.Violations
		if len(in.Items) == 0 {
			v.Add("items", "la orden debe tener al menos una línea")
		}
		if in.PatientID != nil {
			p, err := repos.Patients.GetByID(ctx, *in.PatientID)
			if err != nil {
				return err
			}
			if p == nil {
				v.Add("patient_id", "paciente inexistente")
			}
		}
		demand := make(map[string]int)
		for i, req := range in.Items {
			line, lv, err := buildLine(ctx, repos, order.ID, req, demand)
			if err != nil {
				return err
			}
			v.Merge(fmt.Sprintf("items[%d].", i), lv)
			order.Items = append(order.Items, line)
		}
		if err := v.Err(); err != nil {
			return err
		}

		order.Discount = in.Discount
		order.Recalculate()
		if err := order.CheckTotals().Err(); err != nil {
			return err
		}
		for _, line := range order.Items {
			if err := deductLine(ctx, repos, order.ID, actor.UserID, line, line.Quantity, now); err != nil {
				return err
			}
		}
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	uc.log.ForOperator(order.CreatedBy, order.ShiftID).Info().Str("order_id", order.ID).
		Str("total", order.Total.StringFixed(2)).Int("items", len(order.Items)).Msg("orden creada")
	return toOrderResponse(order, nil), nil
}

// AddItem agrega una línea a una orden PENDING o CONFIRMED.
func (uc *OrderUseCase) AddItem(ctx context.Context, actor entity.Actor, orderID string, req dto.OrderItemRequest) (*dto.OrderResponse, error) {
	return uc.editOrder(ctx, orderID, func(repos repository.Repositories, order *entity.SalesOrder, now time.Time) error {
		line, v, err := buildLine(ctx, repos, order.ID, req, make(map[string]int))
		if err != nil {
			return err
		}
		if err := v.Err(); err != nil {
			return err
		}
		order.Items = append(order.Items, line)
		order.Recalculate()
		if err := order.CheckTotals().Err(); err != nil {
			return err
		}
		if err := deductLine(ctx, repos, order.ID, actor.UserID, line, line.Quantity, now); err != nil {
			return err
		}
		return repos.Orders.CreateItem(ctx, line)
	})
}

// UpdateItem cambia cantidad y precio de una línea; en líneas STOCK ajusta existencias por la diferencia.
func (uc *OrderUseCase) UpdateItem(ctx context.Context, actor entity.Actor, orderID, itemID string, in dto.UpdateOrderItemRequest) (*dto.OrderResponse, error) {
	return uc.editOrder(ctx, orderID, func(repos repository.Repositories, order *entity.SalesOrder, now time.Time) error {
		line := order.Item(itemID)
		if line == nil {
			return domain.ErrNotFound
		}
		var v domain.Violations
		if in.Quantity <= 0 {
			v.Add("quantity", "debe ser mayor que cero")
		}
		if in.UnitPrice.IsNegative() {
			v.Add("unit_price", "no puede ser negativo")
		}
		if err := v.Err(); err != nil {
			return err
		}
		diff := in.Quantity - line.Quantity
		line.Quantity = in.Quantity
		line.UnitPrice = in.UnitPrice
		order.Recalculate()
		if err := order.CheckTotals().Err(); err != nil {
			return err
		}
		switch {
		case diff > 0:
			if err := deductLine(ctx, repos, order.ID, actor.UserID, line, diff, now); err != nil {
				return err
			}
		case diff < 0:
			if err := restockLine(ctx, repos, order.ID, actor.UserID, line, -diff, "edición de orden", now); err != nil {
				return err
			}
		}
		return repos.Orders.UpdateItem(ctx, line)
	})
}

// RemoveItem elimina una línea; la orden conserva al menos una. Las unidades STOCK vuelven al inventario.
func (uc *OrderUseCase) RemoveItem(ctx context.Context, actor entity.Actor, orderID, itemID string) (*dto.OrderResponse, error) {
	return uc.editOrder(ctx, orderID, func(repos repository.Repositories, order *entity.SalesOrder, now time.Time) error {
		line := order.RemoveItem(itemID)
		if line == nil {
			return domain.ErrNotFound
		}
		if len(order.Items) == 0 {
			return domain.Invalid("items", "la orden debe conservar al menos una línea")
		}
		order.Recalculate()
		if err := order.CheckTotals().Err(); err != nil {
			return err
		}
		if err := restockLine(ctx, repos, order.ID, actor.UserID, line, line.Quantity, "línea eliminada", now); err != nil {
			return err
		}
		return repos.Orders.DeleteItem(ctx, line.ID)
	})
}

// editOrder bloquea la orden, verifica que admita edición, aplica fn y persiste la cabecera.
func (uc *OrderUseCase) editOrder(ctx context.Context, orderID string, fn func(repos repository.Repositories, order *entity.SalesOrder, now time.Time) error) (*dto.OrderResponse, error) {
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		order, err = lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if !order.Status.Editable() {
			return fmt.Errorf("%w: la orden en estado %s no admite cambios de líneas", domain.ErrConflict, order.Status)
		}
		now := time.Now()
		if err := fn(repos, order, now); err != nil {
			return err
		}
		order.UpdatedAt = now
		return repos.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, nil), nil
}

// ApplyDiscount fija el descuento de la orden. Idempotente para el mismo valor.
func (uc *OrderUseCase) ApplyDiscount(ctx context.Context, actor entity.Actor, orderID string, discount decimal.Decimal) (*dto.OrderResponse, error) {
	if !actor.Can(entity.PermOrdersDiscount) {
		return nil, domain.ErrPermissionDenied
	}
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		order, err = lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: la orden está en estado %s", domain.ErrConflict, order.Status)
		}
		if err := order.ApplyDiscount(discount); err != nil {
			return err
		}
		order.UpdatedAt = time.Now()
		return repos.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, nil), nil
}

// ChangeStatus aplica una transición de la tabla de estados. ABANDONED se delega a AbandonOrder
// sin líneas a reingresar.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, actor entity.Actor, orderID string, status string) (*dto.OrderResponse, error) {
	to := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !to.Valid() {
		return nil, domain.Invalid("status", fmt.Sprintf("estado desconocido %q", status))
	}
	if to == entity.OrderStatusAbandoned {
		return uc.AbandonOrder(ctx, actor, orderID, nil)
	}
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		order, err = lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(to, time.Now()); err != nil {
			return err
		}
		return repos.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrderTransitions.WithLabelValues(string(to)).Inc()
	return toOrderResponse(order, nil), nil
}

// AbandonOrder pasa la orden a ABANDONED. Cada línea listada que sea de inventario y no se haya
// reingresado vuelve a existencias; servicios, lentes a medida, cotizaciones e IDs desconocidos
// se ignoran sin error.
func (uc *OrderUseCase) AbandonOrder(ctx context.Context, actor entity.Actor, orderID string, restockItemIDs []string) (*dto.OrderResponse, error) {
	if !actor.Can(entity.PermOrdersAbandon) {
		return nil, domain.ErrPermissionDenied
	}
	var (
		order     *entity.SalesOrder
		restocked int
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		restocked = 0
		if _, err := shift.RequireActiveShift(ctx, repos.Shifts, actor.UserID); err != nil {
			return err
		}
		var err error
		order, err = lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := order.TransitionTo(entity.OrderStatusAbandoned, now); err != nil {
			return err
		}
		seen := make(map[string]bool, len(restockItemIDs))
		for _, id := range restockItemIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			line := order.Item(id)
			if line == nil || !line.Kind.Stockable() || line.Restocked {
				continue
			}
			if err := restockLine(ctx, repos, order.ID, actor.UserID, line, line.Quantity, "orden abandonada", now); err != nil {
				return err
			}
			line.Restocked = true
			if err := repos.Orders.UpdateItem(ctx, line); err != nil {
				return err
			}
			restocked++
		}
		return repos.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrderTransitions.WithLabelValues(string(entity.OrderStatusAbandoned)).Inc()
	uc.log.ForOperator(actor.UserID, "").Info().Str("order_id", order.ID).
		Int("restocked_lines", restocked).Msg("orden abandonada")
	return toOrderResponse(order, nil), nil
}

// GetOrderDetails orden con líneas y pagos.
func (uc *OrderUseCase) GetOrderDetails(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.repos.Payments.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, payments), nil
}

// FindOrders busca órdenes por rango de fechas (YYYY-MM-DD, ambos inclusive), estado y paciente.
func (uc *OrderUseCase) FindOrders(ctx context.Context, in dto.FindOrdersRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	filter := repository.OrderFilter{
		PatientQuery: strings.TrimSpace(in.Patient),
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	var v domain.Violations
	if in.From != "" {
		from, err := time.ParseInLocation(dateLayout, in.From, time.Local)
		if err != nil {
			v.Add("from", "formato esperado YYYY-MM-DD")
		} else {
			filter.From = &from
		}
	}
	if in.To != "" {
		to, err := time.ParseInLocation(dateLayout, in.To, time.Local)
		if err != nil {
			v.Add("to", "formato esperado YYYY-MM-DD")
		} else {
			end := to.AddDate(0, 0, 1)
			filter.To = &end
		}
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		v.Add("from", "debe ser anterior o igual a to")
	}
	if in.Status != "" {
		filter.Status = entity.OrderStatus(strings.ToUpper(in.Status))
		if !filter.Status.Valid() {
			v.Addf("status", "estado desconocido %q", in.Status)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	list, err := uc.repos.Orders.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, *toOrderResponse(o, nil))
	}
	return out, nil
}

func lockOrder(ctx context.Context, repos repository.Repositories, orderID string) (*entity.SalesOrder, error) {
	order, err := repos.Orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// buildLine arma y valida una línea. demand acumula unidades pedidas por ítem de inventario
// para detectar faltantes cuando varias líneas usan el mismo ítem.
func buildLine(ctx context.Context, repos repository.Repositories, orderID string, req dto.OrderItemRequest, demand map[string]int) (*entity.SalesOrderItem, domain.Violations, error) {
	line := &entity.SalesOrderItem{
		ID:              uuid.New().String(),
		OrderID:         orderID,
		Kind:            entity.LineKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		InventoryItemID: req.InventoryItemID,
		ProductID:       req.ProductID,
		Description:     strings.TrimSpace(req.Description),
		Prescription:    req.Prescription,
		LensAttributes:  req.LensAttributes,
		Quantity:        req.Quantity,
	}
	if req.UnitPrice != nil {
		line.UnitPrice = *req.UnitPrice
	}
	v := line.Validate()
	if req.UnitPrice == nil && (line.Kind == entity.LineKindCustomLens || line.Kind == entity.LineKindCustomQuote) {
		v.Add("unit_price", "requerido para líneas a medida")
	}
	if len(v) > 0 {
		return line, v, nil
	}
	switch line.Kind {
	case entity.LineKindStock:
		item, err := repos.Items.GetForUpdate(ctx, line.InventoryItemID)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case item == nil:
			v.Add("inventory_item_id", "ítem de inventario inexistente")
		case !item.Active:
			v.Add("inventory_item_id", "ítem de inventario inactivo")
		default:
			demand[item.ID] += line.Quantity
			if demand[item.ID] > item.QuantityOnHand {
				v.Addf("quantity", "stock insuficiente (disponible %d)", item.QuantityOnHand)
			}
			if req.UnitPrice == nil {
				line.UnitPrice = item.SellingPrice
			}
		}
	case entity.LineKindService:
		p, err := repos.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case p == nil:
			v.Add("product_id", "producto inexistente")
		case !p.IsService():
			v.Add("product_id", "el producto no es un servicio")
		case !p.Active:
			v.Add("product_id", "producto inactivo")
		default:
			if req.UnitPrice == nil {
				line.UnitPrice = p.Price
			}
		}
	}
	line.Recalculate()
	return line, v, nil
}

func deductLine(ctx context.Context, repos repository.Repositories, orderID, userID string, line *entity.SalesOrderItem, qty int, now time.Time) error {
	if !line.Kind.Stockable() {
		return nil
	}
	err := inventory.DeductInTx(ctx, repos, inventory.MovementInput{
		ItemID:        line.InventoryItemID,
		Quantity:      qty,
		TransactionID: orderID,
		UserID:        userID,
		Reason:        "venta",
		Now:           now,
	})
	if errors.Is(err, domain.ErrInsufficientStock) {
		return domain.Invalid("quantity", "stock insuficiente")
	}
	return err
}

func restockLine(ctx context.Context, repos repository.Repositories, orderID, userID string, line *entity.SalesOrderItem, qty int, reason string, now time.Time) error {
	if !line.Kind.Stockable() {
		return nil
	}
	return inventory.RestockInTx(ctx, repos, inventory.MovementInput{
		ItemID:        line.InventoryItemID,
		Quantity:      qty,
		TransactionID: orderID,
		UserID:        userID,
		Reason:        reason,
		Now:           now,
	})
}
