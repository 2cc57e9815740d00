//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Optica-api/pkg/config"
)

// Ejecutar con: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func seedOperator(t *testing.T, repos repository.Repositories) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
		ID:           id,
		Email:        id + "@optica.test",
		PasswordHash: "x",
		Name:         "Caja",
		Role:         entity.RoleCashier,
		Status:       "active",
	}))
	return id
}

func activeShift(operatorID string) *entity.Shift {
	now := time.Now()
	return &entity.Shift{
		ID:           uuid.NewString(),
		OperatorID:   operatorID,
		StartTime:    now,
		Status:       entity.ShiftStatusActive,
		OpeningFloat: decimal.NewFromInt(100),
		UpdatedAt:    now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Turnos
// ──────────────────────────────────────────────────────────────────────────────

func TestShiftRepo_OneOpenPerOperator(t *testing.T) {
	pool := testPool(t)
	repos := postgres.NewRepositories(pool)
	ctx := context.Background()
	op := seedOperator(t, repos)

	first := activeShift(op)
	require.NoError(t, repos.Shifts.Create(ctx, first))

	err := repos.Shifts.Create(ctx, activeShift(op))
	require.ErrorIs(t, err, domain.ErrShiftAlreadyActive)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, first.End(time.Now(), decimal.NewFromInt(100), decimal.NewFromInt(100), "", false))
	require.NoError(t, repos.Shifts.Update(ctx, first))
	assert.NoError(t, repos.Shifts.Create(ctx, activeShift(op)), "el índice solo cubre turnos abiertos")
}

func TestRequireActiveShift_WaitsForConcurrentEnd(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	op := seedOperator(t, postgres.NewRepositories(pool))
	s := activeShift(op)
	require.NoError(t, postgres.NewRepositories(pool).Shifts.Create(ctx, s))

	// el cierre toma FOR UPDATE y queda sin confirmar
	endTx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = endTx.Rollback(ctx) }()
	locked, err := postgres.NewRepositories(endTx).Shifts.GetForUpdate(ctx, s.ID)
	require.NoError(t, err)
	require.NoError(t, locked.End(time.Now(), decimal.NewFromInt(100), decimal.NewFromInt(100), "", false))
	require.NoError(t, postgres.NewRepositories(endTx).Shifts.Update(ctx, locked))

	runner := postgres.NewTxRunner(pool)
	result := make(chan error, 1)
	go func() {
		result <- runner.Run(ctx, func(repos repository.Repositories) error {
			_, err := shift.RequireActiveShift(ctx, repos.Shifts, op)
			return err
		})
	}()

	select {
	case err := <-result:
		t.Fatalf("el gate no esperó al cierre: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, endTx.Commit(ctx))
	select {
	case err := <-result:
		assert.ErrorIs(t, err, domain.ErrNoActiveShift)
	case <-time.After(5 * time.Second):
		t.Fatal("el gate sigue bloqueado tras confirmar el cierre")
	}
}

func TestEndShift_WaitsForSharedGate(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	op := seedOperator(t, postgres.NewRepositories(pool))
	s := activeShift(op)
	require.NoError(t, postgres.NewRepositories(pool).Shifts.Create(ctx, s))

	gateTx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = gateTx.Rollback(ctx) }()
	_, err = shift.RequireActiveShift(ctx, postgres.NewRepositories(gateTx).Shifts, op)
	require.NoError(t, err)

	result := make(chan error, 1)
	go func() {
		result <- postgres.NewTxRunner(pool).Run(ctx, func(repos repository.Repositories) error {
			_, err := repos.Shifts.GetForUpdate(ctx, s.ID)
			return err
		})
	}()

	select {
	case err := <-result:
		t.Fatalf("FOR UPDATE no esperó al bloqueo compartido: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, gateTx.Commit(ctx))
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("FOR UPDATE sigue bloqueado")
	}
}
