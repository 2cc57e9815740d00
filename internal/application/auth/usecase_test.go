package auth_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/auth"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Optica-api/pkg/jwt"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store, repository.Repositories) {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	uc := auth.NewAuthUseCase(repos.Users, repos.Shifts, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "optica-api"})
	return uc, store, repos
}

func TestRegisterUser_DefaultsAndDuplicates(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Caja@Optica.test ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "caja@optica.test", u.Email)
	assert.Equal(t, entity.RoleCashier, u.Role)
	assert.ElementsMatch(t, []string{"orders.discount", "expenses.record"}, u.Permissions)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "caja@optica.test", Password: "otroSecreto"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_Validation(t *testing.T) {
	uc, _, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "no-es-email", Password: "corta", Role: "gerente", Permissions: []string{"orders.delete"},
	})
	vs, ok := domain.AsValidation(err)
	require.True(t, ok)
	var fields []string
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"email", "password", "role", "permissions"}, fields)
}

func TestLogin(t *testing.T) {
	uc, store, repos := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "opto@optica.test", Password: "secreto123", Role: entity.RoleOptometrist})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "opto@optica.test", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@optica.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "OPTO@optica.test", Password: "secreto123"})
	require.NoError(t, err)
	assert.Nil(t, out.IncompleteShift)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleOptometrist, claims.Role)
	assert.Equal(t, []string{"orders.discount"}, claims.Permissions)

	ledger := shift.NewLedgerUseCase(store, repos, nil, logger.Nop())
	s, err := ledger.StartShift(ctx, entity.Actor{UserID: u.ID, Role: u.Role}, dto.StartShiftRequest{OpeningFloat: decimal.NewFromInt(20)})
	require.NoError(t, err)

	out, err = uc.Login(ctx, dto.LoginRequest{Email: "opto@optica.test", Password: "secreto123"})
	require.NoError(t, err)
	require.NotNil(t, out.IncompleteShift)
	assert.Equal(t, s.ID, out.IncompleteShift.ID)
}

func TestSetPermissions(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "caja2@optica.test", Password: "secreto123"})
	require.NoError(t, err)

	cashier := entity.Actor{UserID: u.ID, Role: entity.RoleCashier, Permissions: []entity.Permission{entity.PermUsersManage}}
	_, err = uc.SetPermissions(ctx, cashier, u.ID, dto.SetPermissionsRequest{Permissions: []string{"orders.abandon"}})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	admin := entity.Actor{UserID: "admin", Role: entity.RoleAdmin}
	out, err := uc.SetPermissions(ctx, admin, u.ID, dto.SetPermissionsRequest{Permissions: []string{"orders.abandon", "orders.abandon", "shifts.force_end"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"orders.abandon", "shifts.force_end"}, out.Permissions)

	_, err = uc.SetPermissions(ctx, admin, u.ID, dto.SetPermissionsRequest{Permissions: []string{"root"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetPermissions(ctx, admin, "missing", dto.SetPermissionsRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	got, err := uc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders.abandon", "shifts.force_end"}, got.Permissions)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin@optica.test", "admin12345")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin@optica.test", "admin12345")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := uc.ListUsers(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
}
