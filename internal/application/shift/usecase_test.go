package shift_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T) (*shift.LedgerUseCase, repository.Repositories) {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	return shift.NewLedgerUseCase(store, repos, nil, logger.Nop()), repos
}

func operator() entity.Actor {
	return entity.Actor{UserID: uuid.NewString(), Role: entity.RoleCashier}
}

func TestStartShift_OnlyOneOpenPerOperator(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	op := operator()

	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", s.Status)

	_, err = ledger.StartShift(ctx, op, dto.StartShiftRequest{OpeningFloat: dec("50")})
	require.ErrorIs(t, err, domain.ErrShiftAlreadyActive)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = ledger.PauseShift(ctx, op, s.ID)
	require.NoError(t, err)
	_, err = ledger.StartShift(ctx, op, dto.StartShiftRequest{})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyActive, "un turno PAUSED también bloquea")

	_, err = ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{ClosingFloat: dec("100"), Forced: true, Notes: "sesión interrumpida"})
	require.NoError(t, err)
	_, err = ledger.StartShift(ctx, op, dto.StartShiftRequest{})
	assert.NoError(t, err)
}

func TestStartShift_NegativeFloat(t *testing.T) {
	ledger, _ := newLedger(t)
	_, err := ledger.StartShift(context.Background(), operator(), dto.StartShiftRequest{OpeningFloat: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShiftTransitions(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	op := operator()
	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{})
	require.NoError(t, err)

	_, err = ledger.ResumeShift(ctx, op, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidShiftState, "ACTIVE no se reanuda")

	for i := 0; i < 2; i++ {
		out, err := ledger.PauseShift(ctx, op, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "PAUSED", out.Status)
		out, err = ledger.ResumeShift(ctx, op, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", out.Status)
	}

	_, err = ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{})
	require.NoError(t, err)

	_, err = ledger.PauseShift(ctx, op, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidShiftState)
	_, err = ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidShiftState)

	got, err := ledger.GetShift(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENDED", got.Status, "un intento inválido no cambia el estado")
}

func TestEndShift_PausedRequiresForced(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	op := operator()
	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)
	_, err = ledger.PauseShift(ctx, op, s.ID)
	require.NoError(t, err)

	_, err = ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{ClosingFloat: dec("100")})
	require.ErrorIs(t, err, domain.ErrInvalidShiftState)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := ledger.GetShift(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAUSED", got.Status, "el intento rechazado no cambia el turno")
	assert.Nil(t, got.EndTime)

	out, err := ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{ClosingFloat: dec("100"), Forced: true, Notes: "cierre al iniciar sesión"})
	require.NoError(t, err)
	assert.Equal(t, "ENDED", out.Status)
	assert.True(t, out.Forced)
}

func TestEndShift_ForcedRequiresNotes(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	op := operator()
	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{})
	require.NoError(t, err)

	_, err = ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{Forced: true, Notes: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	vs, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "notes", vs[0].Field)

	out, err := ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{Forced: true, Notes: "corte de luz"})
	require.NoError(t, err)
	assert.True(t, out.Forced)
}

func TestEndShift_DiscrepancyIsInformational(t *testing.T) {
	ledger, repos := newLedger(t)
	ctx := context.Background()
	op := operator()
	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	sid := s.ID
	require.NoError(t, repos.Payments.Create(ctx, &entity.Payment{ID: uuid.NewString(), ShiftID: sid, Amount: dec("60"), Method: entity.PaymentMethodCash}))
	require.NoError(t, repos.Payments.Create(ctx, &entity.Payment{ID: uuid.NewString(), ShiftID: sid, Amount: dec("40"), Method: entity.PaymentMethodCard}))
	require.NoError(t, repos.Expenses.Create(ctx, &entity.Expense{ID: uuid.NewString(), ShiftID: &sid, Amount: dec("15"), Method: entity.PaymentMethodCash}))

	out, err := ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{ClosingFloat: dec("140")})
	require.NoError(t, err)
	assert.True(t, dec("145").Equal(*out.ExpectedCash), "100 + 60 - 15")
	assert.True(t, dec("-5").Equal(*out.Discrepancy))
	assert.Equal(t, "ENDED", out.Status)
}

func TestEndShift_OtherOperatorNeedsForceEnd(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	owner := operator()
	s, err := ledger.StartShift(ctx, owner, dto.StartShiftRequest{})
	require.NoError(t, err)

	other := operator()
	_, err = ledger.EndShift(ctx, other, s.ID, dto.EndShiftRequest{Forced: true, Notes: "cierre supervisor"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	_, err = ledger.PauseShift(ctx, other, s.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	supervisor := entity.Actor{UserID: uuid.NewString(), Role: entity.RoleOptometrist, Permissions: []entity.Permission{entity.PermShiftsForceEnd}}
	out, err := ledger.EndShift(ctx, supervisor, s.ID, dto.EndShiftRequest{Forced: true, Notes: "cierre supervisor"})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, out.OperatorID)
}

func TestGetIncompleteShiftForOperator(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	op := operator()

	none, err := ledger.GetIncompleteShiftForOperator(ctx, op.UserID)
	require.NoError(t, err)
	assert.Nil(t, none)

	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{})
	require.NoError(t, err)
	_, err = ledger.PauseShift(ctx, op, s.ID)
	require.NoError(t, err)

	got, err := ledger.GetIncompleteShiftForOperator(ctx, op.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "PAUSED", got.Status)
}

func TestGetShiftSummary(t *testing.T) {
	ledger, repos := newLedger(t)
	ctx := context.Background()
	op := operator()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: op.UserID, Email: "caja@optica.test", Name: "Caja 1"}))
	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{OpeningFloat: dec("50")})
	require.NoError(t, err)
	require.NoError(t, repos.Payments.Create(ctx, &entity.Payment{ID: uuid.NewString(), ShiftID: s.ID, Amount: dec("20"), Method: entity.PaymentMethodCash}))
	require.NoError(t, repos.Payments.Create(ctx, &entity.Payment{ID: uuid.NewString(), ShiftID: s.ID, Amount: dec("35"), Method: entity.PaymentMethodCard}))

	sum, err := ledger.GetShiftSummary(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caja 1", sum.OperatorName)
	assert.True(t, dec("70").Equal(sum.ExpectedCash))
	assert.Nil(t, sum.Discrepancy)
	require.Len(t, sum.PaymentsByMethod, len(entity.PaymentMethods))
	assert.Equal(t, "CARD", sum.PaymentsByMethod[1].Method)
	assert.True(t, dec("35").Equal(sum.PaymentsByMethod[1].Total))

	_, err = ledger.ShiftReportPDF(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin generador configurado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate de turno activo
// ──────────────────────────────────────────────────────────────────────────────

// shareSpy cuenta las lecturas con bloqueo compartido sobre el repo en memoria.
type shareSpy struct {
	repository.ShiftRepository
	shared, plain int
}

func (s *shareSpy) GetOpenByOperatorForShare(ctx context.Context, operatorID string) (*entity.Shift, error) {
	s.shared++
	return s.ShiftRepository.GetOpenByOperatorForShare(ctx, operatorID)
}

func (s *shareSpy) GetOpenByOperator(ctx context.Context, operatorID string) (*entity.Shift, error) {
	s.plain++
	return s.ShiftRepository.GetOpenByOperator(ctx, operatorID)
}

func TestRequireActiveShift_LocksAndSeesEnd(t *testing.T) {
	ledger, repos := newLedger(t)
	ctx := context.Background()
	op := operator()
	spy := &shareSpy{ShiftRepository: repos.Shifts}

	s, err := ledger.StartShift(ctx, op, dto.StartShiftRequest{OpeningFloat: dec("10")})
	require.NoError(t, err)

	got, err := shift.RequireActiveShift(ctx, spy, op.UserID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 1, spy.shared)
	assert.Zero(t, spy.plain, "el gate debe leer con bloqueo compartido")

	_, err = ledger.EndShift(ctx, op, s.ID, dto.EndShiftRequest{ClosingFloat: dec("10")})
	require.NoError(t, err)

	_, err = shift.RequireActiveShift(ctx, spy, op.UserID)
	assert.ErrorIs(t, err, domain.ErrNoActiveShift)
	assert.Equal(t, 2, spy.shared)
}
