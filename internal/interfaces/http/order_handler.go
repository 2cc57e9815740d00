package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/sales"
)

// OrderHandler órdenes de venta y sus pagos.
type OrderHandler struct {
	orders   *sales.OrderUseCase
	payments *sales.PaymentUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *sales.OrderUseCase, payments *sales.PaymentUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Requiere turno ACTIVE. Valida todas las líneas y devuelve todas las violaciones juntas.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "patient_id, discount, items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "NO_ACTIVE_SHIFT | INSUFFICIENT_STOCK"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.CreateOrder(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Find godoc
// @Summary      Buscar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        to       query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        status   query  string  false  "Estado"
// @Param        patient  query  string  false  "Nombre o documento del paciente"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) Find(c *fiber.Ctx) error {
	in := dto.FindOrdersRequest{
		From:        c.Query("from"),
		To:          c.Query("to"),
		Status:      c.Query("status"),
		Patient:     c.Query("patient"),
		PageRequest: pageFromQuery(c),
	}
	out, err := h.orders.FindOrders(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get orden con líneas y pagos.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.orders.GetOrderDetails(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.OrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.AddItem(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *OrderHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.UpdateItem(c.Context(), GetActor(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.orders.RemoveItem(c.Context(), GetActor(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApplyDiscount godoc
// @Summary      Aplicar descuento
// @Description  Fija el descuento de la orden (idempotente). Requiere orders.discount.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la orden"
// @Param        body  body  dto.ApplyDiscountRequest  true  "discount"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/discount [put]
func (h *OrderHandler) ApplyDiscount(c *fiber.Ctx) error {
	var in dto.ApplyDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.ApplyDiscount(c.Context(), GetActor(c), c.Params("id"), in.Discount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.ChangeStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION"
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.ChangeStatus(c.Context(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Abandon godoc
// @Summary      Abandonar orden
// @Description  Las líneas de inventario listadas vuelven a existencias. Requiere orders.abandon y turno ACTIVE.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.AbandonOrderRequest  false "restock_item_ids"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/abandon [post]
func (h *OrderHandler) Abandon(c *fiber.Ctx) error {
	var in dto.AbandonOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.orders.AbandonOrder(c.Context(), GetActor(c), c.Params("id"), in.RestockItemIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordPayment godoc
// @Summary      Registrar pago
// @Description  El monto no puede superar el saldo. Tarjeta, transferencia y cheque exigen bank_name y transaction_ref.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la orden"
// @Param        body  body  dto.RecordPaymentRequest  true  "amount, method, bank_name, transaction_ref"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments [post]
func (h *OrderHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RecordPayment(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *OrderHandler) ListPayments(c *fiber.Ctx) error {
	list, err := h.payments.ListPayments(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}
