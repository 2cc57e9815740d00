package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// ShiftHandler turnos de caja.
type ShiftHandler struct {
	uc *shift.LedgerUseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shift.LedgerUseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar turno
// @Description  Abre un turno ACTIVE para el operador del token. Solo puede haber uno abierto (ACTIVE o PAUSED).
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartShiftRequest  true  "opening_float"
// @Success      201   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shifts [post]
func (h *ShiftHandler) Start(c *fiber.Ctx) error {
	var in dto.StartShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.StartShift(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Pause godoc
// @Summary      Pausar turno
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/pause [post]
func (h *ShiftHandler) Pause(c *fiber.Ctx) error {
	out, err := h.uc.PauseShift(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resume godoc
// @Summary      Reanudar turno
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/resume [post]
func (h *ShiftHandler) Resume(c *fiber.Ctx) error {
	out, err := h.uc.ResumeShift(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// End godoc
// @Summary      Cerrar turno
// @Description  Registra el efectivo contado y el descuadre contra el esperado. forced=true exige notas.
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del turno"
// @Param        body  body  dto.EndShiftRequest  true  "closing_float, notes, forced"
// @Success      200   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/end [post]
func (h *ShiftHandler) End(c *fiber.Ctx) error {
	var in dto.EndShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.EndShift(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Current turno ACTIVE o PAUSED del operador del token; 204 si no tiene.
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.GetIncompleteShiftForOperator(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

func (h *ShiftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetShift(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List historial del operador. Consultar otro operador (operator_id) exige shifts.manage.
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	actor := GetActor(c)
	operatorID := c.Query("operator_id", actor.UserID)
	if operatorID != actor.UserID && !actor.Can(entity.PermShiftsManage) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PERMISSION_DENIED", Message: "se requiere el permiso 'shifts.manage'"})
	}
	page := pageFromQuery(c)
	list, err := h.uc.ListShifts(c.Context(), operatorID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list, page))
}

// Summary godoc
// @Summary      Resumen del turno
// @Description  Totales por medio de pago, gastos en efectivo, efectivo esperado y descuadre.
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/summary [get]
func (h *ShiftHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetShiftSummary(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report reporte Z en PDF.
// @Router       /api/shifts/{id}/report [get]
func (h *ShiftHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.ShiftReportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="turno-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
