package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/internal/infrastructure/memory"
)

func TestRun_RollbackOnError(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	repos := store.Repositories()
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "i1", SKU: "A", QuantityOnHand: 5}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Items.UpdateQuantity(ctx, "i1", 1); err != nil {
			return err
		}
		if err := tx.Movements.Create(ctx, &entity.InventoryMovement{ID: "m1", InventoryItemID: "i1", Quantity: -4}); err != nil {
			return err
		}
		got, err := tx.Items.GetByID(ctx, "i1")
		require.NoError(t, err)
		assert.Equal(t, 1, got.QuantityOnHand, "la transacción ve sus propias escrituras")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repos.Items.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.QuantityOnHand)
	movs, err := repos.Movements.ListByItem(ctx, "i1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_Commit(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	err := store.Run(ctx, func(tx repository.Repositories) error {
		return tx.Shifts.Create(ctx, &entity.Shift{ID: "s1", OperatorID: "op", Status: entity.ShiftStatusActive, StartTime: time.Now()})
	})
	require.NoError(t, err)

	open, err := store.Repositories().Shifts.GetOpenByOperator(ctx, "op")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, "s1", open.ID)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.New().Run(ctx, func(repository.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestShiftRepo_OneOpenPerOperator(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Shifts.Create(ctx, &entity.Shift{ID: "s1", OperatorID: "op", Status: entity.ShiftStatusPaused}))
	err := repos.Shifts.Create(ctx, &entity.Shift{ID: "s2", OperatorID: "op", Status: entity.ShiftStatusActive})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyActive)
	require.NoError(t, repos.Shifts.Create(ctx, &entity.Shift{ID: "s3", OperatorID: "other", Status: entity.ShiftStatusActive}))
}

func TestReadsReturnCopies(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Email: "a@b.c", Permissions: []entity.Permission{entity.PermOrdersAbandon}}))

	u, err := repos.Users.GetByID(ctx, "u1")
	require.NoError(t, err)
	u.Permissions[0] = entity.PermUsersManage
	u.Name = "cambiado"

	again, err := repos.Users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.PermOrdersAbandon, again.Permissions[0])
	assert.Empty(t, again.Name)

	_, err = repos.Users.GetByID(ctx, "missing")
	assert.NoError(t, err)
	err = repos.Users.Create(ctx, &entity.User{ID: "u2", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	sum, err := repos.Payments.SumByShift(ctx, "nada", entity.PaymentMethodCash)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.Zero))
}
