package expense_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/expense"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	expenses *expense.UseCase
	ledger   *shift.LedgerUseCase
	actor    entity.Actor
	category string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	f := &fixture{
		expenses: expense.NewUseCase(store, repos),
		ledger:   shift.NewLedgerUseCase(store, repos, nil, logger.Nop()),
		actor: entity.Actor{
			UserID:      uuid.NewString(),
			Role:        entity.RoleCashier,
			Permissions: entity.DefaultPermissions(entity.RoleCashier),
		},
	}
	cat, err := f.expenses.CreateCategory(context.Background(), f.actor, dto.ExpenseCategoryRequest{Name: "Insumos"})
	require.NoError(t, err)
	f.category = cat.ID
	return f
}

func TestRecordExpense_CashRequiresActiveShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := dto.RecordExpenseRequest{CategoryID: f.category, Description: "paños", Amount: dec("12"), Method: "cash"}

	_, err := f.expenses.RecordExpense(ctx, f.actor, req)
	require.ErrorIs(t, err, domain.ErrNoActiveShift)

	s, err := f.ledger.StartShift(ctx, f.actor, dto.StartShiftRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	out, err := f.expenses.RecordExpense(ctx, f.actor, req)
	require.NoError(t, err)
	require.NotNil(t, out.ShiftID)
	assert.Equal(t, s.ID, *out.ShiftID)
	assert.Equal(t, "CASH", out.Method)

	ended, err := f.ledger.EndShift(ctx, f.actor, s.ID, dto.EndShiftRequest{ClosingFloat: dec("88")})
	require.NoError(t, err)
	assert.True(t, dec("88").Equal(*ended.ExpectedCash))
	assert.True(t, ended.Discrepancy.IsZero())
}

func TestRecordExpense_BankMethodsNeedReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.expenses.RecordExpense(ctx, f.actor, dto.RecordExpenseRequest{
		CategoryID: f.category, Description: "arriendo", Amount: dec("900"), Method: "BANK_TRANSFER",
	})
	vs, ok := domain.AsValidation(err)
	require.True(t, ok)
	require.Len(t, vs, 2)
	assert.Equal(t, "bank_name", vs[0].Field)
	assert.Equal(t, "transaction_ref", vs[1].Field)

	out, err := f.expenses.RecordExpense(ctx, f.actor, dto.RecordExpenseRequest{
		CategoryID: f.category, Description: "arriendo", Amount: dec("900"), Method: "BANK_TRANSFER",
		BankName: "Banco Uno", TransactionRef: "TRF-889", Date: "2026-03-01",
	})
	require.NoError(t, err, "sin turno: solo el efectivo lo exige")
	assert.Nil(t, out.ShiftID)
	assert.Equal(t, "2026-03-01", out.Date.Format("2006-01-02"))
}

func TestRecordExpense_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.expenses.RecordExpense(ctx, f.actor, dto.RecordExpenseRequest{Method: "CASH", Date: "01/03/2026"})
	vs, ok := domain.AsValidation(err)
	require.True(t, ok)
	var fields []string
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"amount", "description", "category_id", "date"}, fields)

	_, err = f.expenses.RecordExpense(ctx, f.actor, dto.RecordExpenseRequest{
		CategoryID: uuid.NewString(), Description: "x", Amount: dec("1"), Method: "CARD", BankName: "b", TransactionRef: "t",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.expenses.RecordExpense(ctx, entity.Actor{UserID: "x", Role: entity.RoleOptometrist}, dto.RecordExpenseRequest{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestListExpenses_DateRangeInclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-05"} {
		_, err := f.expenses.RecordExpense(ctx, f.actor, dto.RecordExpenseRequest{
			CategoryID: f.category, Description: "d " + d, Amount: dec("10"), Method: "CHEQUE",
			BankName: "Banco", TransactionRef: "CH-" + d, Date: d,
		})
		require.NoError(t, err)
	}

	list, err := f.expenses.ListExpenses(ctx, "2026-03-01", "2026-03-02", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.After(list[1].Date) || list[0].Date.Equal(list[1].Date))

	all, err := f.expenses.ListExpenses(ctx, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.expenses.ListExpenses(ctx, "ayer", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCategory_UniqueName(t *testing.T) {
	f := newFixture(t)
	_, err := f.expenses.CreateCategory(context.Background(), f.actor, dto.ExpenseCategoryRequest{Name: "Insumos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := f.expenses.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
