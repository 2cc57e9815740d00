package ports

import (
	"context"

	"github.com/jhoicas/Optica-api/internal/application/dto"
)

// ShiftReportGenerator genera el reporte de cierre de turno (reporte Z) en PDF.
type ShiftReportGenerator interface {
	GenerateShiftReport(ctx context.Context, summary *dto.ShiftSummaryResponse) ([]byte, error)
}
