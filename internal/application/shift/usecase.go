package shift

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/logger"
	"github.com/jhoicas/Optica-api/pkg/metrics"
)

// LedgerUseCase controla el ciclo de vida del turno de caja (ACTIVE ⇄ PAUSED → ENDED)
// y concilia el efectivo declarado al cierre contra el esperado.
type LedgerUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	reports  ports.ShiftReportGenerator
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. reports puede ser nil (sin PDF).
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	repos repository.Repositories,
	reports ports.ShiftReportGenerator,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, repos: repos, reports: reports, log: log}
}

// StartShift abre un turno ACTIVE para el operador. Falla con ErrShiftAlreadyActive si ya
// tiene uno ACTIVE o PAUSED.
func (uc *LedgerUseCase) StartShift(ctx context.Context, actor entity.Actor, in dto.StartShiftRequest) (*dto.ShiftResponse, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.OpeningFloat.IsNegative() {
		return nil, domain.Invalid("opening_float", "no puede ser negativo")
	}
	now := time.Now()
	s := &entity.Shift{
		ID:           uuid.New().String(),
		OperatorID:   actor.UserID,
		StartTime:    now,
		Status:       entity.ShiftStatusActive,
		OpeningFloat: in.OpeningFloat,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		open, err := repos.Shifts.GetOpenByOperator(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrShiftAlreadyActive
		}
		return repos.Shifts.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	metrics.ShiftsOpened.Inc()
	uc.log.ForOperator(s.OperatorID, s.ID).Info().
		Str("opening_float", s.OpeningFloat.StringFixed(2)).Msg("turno iniciado")
	return ToShiftResponse(s), nil
}

// PauseShift ACTIVE -> PAUSED.
func (uc *LedgerUseCase) PauseShift(ctx context.Context, actor entity.Actor, shiftID string) (*dto.ShiftResponse, error) {
	return uc.mutate(ctx, actor, shiftID, func(s *entity.Shift, now time.Time) error {
		return s.Pause(now)
	})
}

// ResumeShift PAUSED -> ACTIVE.
func (uc *LedgerUseCase) ResumeShift(ctx context.Context, actor entity.Actor, shiftID string) (*dto.ShiftResponse, error) {
	return uc.mutate(ctx, actor, shiftID, func(s *entity.Shift, now time.Time) error {
		return s.Resume(now)
	})
}

func (uc *LedgerUseCase) mutate(ctx context.Context, actor entity.Actor, shiftID string, fn func(*entity.Shift, time.Time) error) (*dto.ShiftResponse, error) {
	var out *entity.Shift
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := repos.Shifts.GetForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if s.OperatorID != actor.UserID && !actor.Can(entity.PermShiftsManage) {
			return domain.ErrPermissionDenied
		}
		if err := fn(s, time.Now()); err != nil {
			return err
		}
		out = s
		return repos.Shifts.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return ToShiftResponse(out), nil
}

// EndShift cierra el turno (desde ACTIVE o PAUSED). El descuadre entre el efectivo declarado y
// el esperado se registra pero no impide el cierre. Cerrar el turno de otro operador exige
// shifts.force_end.
func (uc *LedgerUseCase) EndShift(ctx context.Context, actor entity.Actor, shiftID string, in dto.EndShiftRequest) (*dto.ShiftResponse, error) {
	var out *entity.Shift
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := repos.Shifts.GetForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if s.OperatorID != actor.UserID && !actor.Can(entity.PermShiftsForceEnd) {
			return domain.ErrPermissionDenied
		}
		expected, _, _, err := expectedCash(ctx, repos, s)
		if err != nil {
			return err
		}
		if err := s.End(time.Now(), in.ClosingFloat, expected, in.Notes, in.Forced); err != nil {
			return err
		}
		out = s
		return repos.Shifts.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	metrics.ShiftsClosed.Inc()
	l := uc.log.ForOperator(out.OperatorID, out.ID)
	ev := l.Info()
	if out.Discrepancy != nil && !out.Discrepancy.IsZero() {
		ev = l.Warn()
	}
	ev.Str("expected_cash", out.ExpectedCash.StringFixed(2)).
		Str("closing_float", out.ClosingFloat.StringFixed(2)).
		Str("discrepancy", out.Discrepancy.StringFixed(2)).
		Bool("forced", out.Forced).
		Msg("turno cerrado")
	return ToShiftResponse(out), nil
}

// GetIncompleteShiftForOperator devuelve el turno ACTIVE o PAUSED del operador (nil si no hay).
// Se usa al iniciar sesión para detectar una sesión interrumpida.
func (uc *LedgerUseCase) GetIncompleteShiftForOperator(ctx context.Context, operatorID string) (*dto.ShiftResponse, error) {
	s, err := uc.repos.Shifts.GetOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return ToShiftResponse(s), nil
}

// GetShift obtiene un turno por ID.
func (uc *LedgerUseCase) GetShift(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	s, err := uc.repos.Shifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ToShiftResponse(s), nil
}

// ListShifts historial de turnos de un operador, más recientes primero.
func (uc *LedgerUseCase) ListShifts(ctx context.Context, operatorID string, page dto.PageRequest) ([]dto.ShiftResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Shifts.ListByOperator(ctx, operatorID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToShiftResponse(s))
	}
	return out, nil
}

// GetShiftSummary totales del turno por medio de pago, gastos en efectivo y efectivo esperado.
func (uc *LedgerUseCase) GetShiftSummary(ctx context.Context, id string) (*dto.ShiftSummaryResponse, error) {
	s, err := uc.repos.Shifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	expected, cashIn, cashOut, err := expectedCash(ctx, uc.repos, s)
	if err != nil {
		return nil, err
	}
	byMethod := make([]dto.MethodTotal, 0, len(entity.PaymentMethods))
	for _, m := range entity.PaymentMethods {
		total := cashIn
		if m != entity.PaymentMethodCash {
			if total, err = uc.repos.Payments.SumByShift(ctx, s.ID, m); err != nil {
				return nil, err
			}
		}
		byMethod = append(byMethod, dto.MethodTotal{Method: string(m), Total: total})
	}
	orders, err := uc.repos.Orders.CountByShift(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	operatorName := s.OperatorID
	if u, _ := uc.repos.Users.GetByID(ctx, s.OperatorID); u != nil {
		operatorName = u.Name
	}
	summary := &dto.ShiftSummaryResponse{
		Shift:            *ToShiftResponse(s),
		OperatorName:     operatorName,
		PaymentsByMethod: byMethod,
		CashIn:           cashIn,
		CashExpenses:     cashOut,
		ExpectedCash:     expected,
		OrderCount:       orders,
		GeneratedAt:      time.Now(),
	}
	if s.ClosingFloat != nil {
		diff := s.ClosingFloat.Sub(expected)
		summary.Discrepancy = &diff
	}
	return summary, nil
}

// ShiftReportPDF genera el reporte Z del turno.
func (uc *LedgerUseCase) ShiftReportPDF(ctx context.Context, id string) ([]byte, error) {
	if uc.reports == nil {
		return nil, domain.ErrNotFound
	}
	summary, err := uc.GetShiftSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateShiftReport(ctx, summary)
}

// RequireActiveShift devuelve el turno ACTIVE del operador o ErrNoActiveShift.
// Un turno PAUSED no habilita operaciones de caja. Se llama dentro de la transacción del
// movimiento: el bloqueo compartido impide que un EndShift concurrente cierre el turno
// sin contar el movimiento.
func RequireActiveShift(ctx context.Context, shifts repository.ShiftRepository, operatorID string) (*entity.Shift, error) {
	s, err := shifts.GetOpenByOperatorForShare(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Status != entity.ShiftStatusActive {
		return nil, domain.ErrNoActiveShift
	}
	return s, nil
}

func expectedCash(ctx context.Context, repos repository.Repositories, s *entity.Shift) (expected, cashIn, cashOut decimal.Decimal, err error) {
	cashIn, err = repos.Payments.SumByShift(ctx, s.ID, entity.PaymentMethodCash)
	if err != nil {
		return
	}
	cashOut, err = repos.Expenses.SumByShift(ctx, s.ID, entity.PaymentMethodCash)
	if err != nil {
		return
	}
	expected = entity.ExpectedCash(s.OpeningFloat, cashIn, cashOut)
	return
}

// ToShiftResponse mapea la entidad a DTO.
func ToShiftResponse(s *entity.Shift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:           s.ID,
		OperatorID:   s.OperatorID,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Status:       string(s.Status),
		OpeningFloat: s.OpeningFloat,
		ClosingFloat: s.ClosingFloat,
		ExpectedCash: s.ExpectedCash,
		Discrepancy:  s.Discrepancy,
		Notes:        s.Notes,
		Forced:       s.Forced,
	}
}
