package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/inventory"
	"github.com/jhoicas/Optica-api/internal/domain"
)

const dateLayout = "2006-01-02"

// InventoryHandler ítems de inventario, ajustes, kardex y reposición (protegido).
type InventoryHandler struct {
	uc            *inventory.UseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// CreateItem godoc
// @Summary      Crear ítem de inventario
// @Description  La existencia inicial queda registrada como movimiento ADJUSTMENT.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "sku, name, quantity_on_hand, selling_price, cost_price, min_stock_level"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateItem(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListItems ?active=true filtra los ítems dados de baja.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.uc.ListItems(c.Context(), c.QueryBool("active", false), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list, page))
}

// AdjustStock godoc
// @Summary      Ajustar existencia
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ítem"
// @Param        body  body  dto.AdjustStockRequest  true  "delta, reason"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustStock(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements kardex del ítem. from/to en YYYY-MM-DD, ambos inclusive.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var (
		v        domain.Violations
		from, to *time.Time
	)
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			v.Add("from", "formato esperado YYYY-MM-DD")
		} else {
			from = &t
		}
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			v.Add("to", "formato esperado YYYY-MM-DD")
		} else {
			end := t.AddDate(0, 0, 1)
			to = &end
		}
	}
	if err := v.Err(); err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListMovements(c.Context(), c.Params("id"), from, to, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}

// GetLowStock godoc
// @Summary      Lista de reposición
// @Description  Ítems activos en o bajo su mínimo con la cantidad sugerida de pedido
//
//	(llevar la existencia al doble del mínimo), ordenados por urgencia.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	list, err := h.replenishment.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
