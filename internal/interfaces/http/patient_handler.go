package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/patient"
)

// PatientHandler registro y búsqueda de pacientes.
type PatientHandler struct {
	uc *patient.UseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *patient.UseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar paciente
// @Tags         patients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PatientRequest  true  "Datos del paciente"
// @Success      201   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/patients [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.PatientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePatient(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PatientHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetPatient(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search ?q= busca por nombre o documento.
func (h *PatientHandler) Search(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.uc.SearchPatients(c.Context(), c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list, page))
}
