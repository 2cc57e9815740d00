package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/sales"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	repos    repository.Repositories
	ledger   *shift.LedgerUseCase
	orders   *sales.OrderUseCase
	payments *sales.PaymentUseCase
	cashier  entity.Actor
	frame    *entity.InventoryItem
	exam     *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	log := logger.Nop()
	f := &fixture{
		store:    store,
		repos:    repos,
		ledger:   shift.NewLedgerUseCase(store, repos, nil, log),
		orders:   sales.NewOrderUseCase(store, repos, log),
		payments: sales.NewPaymentUseCase(store, repos, log),
		cashier: entity.Actor{
			UserID:      uuid.NewString(),
			Role:        entity.RoleCashier,
			Permissions: []entity.Permission{entity.PermOrdersDiscount, entity.PermOrdersAbandon},
		},
	}
	ctx := context.Background()
	f.frame = &entity.InventoryItem{
		ID:             uuid.NewString(),
		SKU:            "ARM-001",
		Name:           "Armazón acetato",
		QuantityOnHand: 5,
		SellingPrice:   dec("50.00"),
		CostPrice:      dec("20.00"),
		MinStockLevel:  1,
		Active:         true,
	}
	require.NoError(t, repos.Items.Create(ctx, f.frame))
	f.exam = &entity.Product{
		ID:     uuid.NewString(),
		Name:   "Examen de optometría",
		Type:   entity.ProductTypeService,
		Price:  dec("30.00"),
		Active: true,
	}
	require.NoError(t, repos.Products.Create(ctx, f.exam))
	return f
}

// retryOnce descarta el primer intento completo de cada transacción y la repite, como el
// runner de postgres ante un deadlock o fallo de serialización.
type retryOnce struct {
	inner *memory.Store
}

var errRetry = errors.New("reintento")

func (r retryOnce) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	err := r.inner.Run(ctx, func(repos repository.Repositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		return errRetry
	})
	if !errors.Is(err, errRetry) {
		return err
	}
	return r.inner.Run(ctx, fn)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

func (f *fixture) startShift(t *testing.T, actor entity.Actor, opening string) *dto.ShiftResponse {
	t.Helper()
	s, err := f.ledger.StartShift(context.Background(), actor, dto.StartShiftRequest{OpeningFloat: dec(opening)})
	require.NoError(t, err)
	return s
}

func (f *fixture) stockLine(qty int, price string) dto.OrderItemRequest {
	return dto.OrderItemRequest{Kind: "STOCK", InventoryItemID: f.frame.ID, Quantity: qty, UnitPrice: decPtr(price)}
}

func (f *fixture) createOrder(t *testing.T, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	o, err := f.orders.CreateOrder(context.Background(), f.cashier, dto.CreateOrderRequest{Items: items})
	require.NoError(t, err)
	return o
}

func (f *fixture) onHand(t *testing.T) int {
	t.Helper()
	it, err := f.repos.Items.GetByID(context.Background(), f.frame.ID)
	require.NoError(t, err)
	return it.QuantityOnHand
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	vs, ok := domain.AsValidation(err)
	require.True(t, ok, "se esperaba *domain.ValidationError")
	fields := make([]string, 0, len(vs))
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	return fields
}

func lineOfKind(o *dto.OrderResponse, kind string) dto.OrderItemResponse {
	for _, it := range o.Items {
		if it.Kind == kind {
			return it
		}
	}
	return dto.OrderItemResponse{}
}
