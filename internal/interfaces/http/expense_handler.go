package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/expense"
)

// ExpenseHandler gastos y categorías de gasto.
type ExpenseHandler struct {
	uc *expense.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expense.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar gasto
// @Description  Un gasto en efectivo exige turno ACTIVE y reduce el efectivo esperado al cierre.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordExpenseRequest  true  "date, category_id, description, amount, method"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "NO_ACTIVE_SHIFT"
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordExpense(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List from/to en YYYY-MM-DD, ambos inclusive.
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.uc.ListExpenses(c.Context(), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list, page))
}

func (h *ExpenseHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.ExpenseCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ExpenseHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}
