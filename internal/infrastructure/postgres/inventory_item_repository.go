package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo existencias sobre PostgreSQL. Acepta pool o tx (Querier).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, product_id, sku, name, brand, model, color, size, quantity_on_hand,
	selling_price, cost_price, min_stock_level, active, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		it        entity.InventoryItem
		productID *string
	)
	err := row.Scan(&it.ID, &productID, &it.SKU, &it.Name, &it.Brand, &it.Model, &it.Color, &it.Size,
		&it.QuantityOnHand, &it.SellingPrice, &it.CostPrice, &it.MinStockLevel, &it.Active,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.ProductID = derefString(productID)
	return &it, nil
}

// Create inserta el ítem. SKU duplicado -> domain.ErrDuplicate.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		it.ID, nullString(it.ProductID), it.SKU, it.Name, it.Brand, it.Model, it.Color, it.Size,
		it.QuantityOnHand, it.SellingPrice, it.CostPrice, it.MinStockLevel, it.Active, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// UpdateQuantity fija la existencia. El CHECK de la tabla impide valores negativos.
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity_on_hand = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por el motor de inventario).
func (r *InventoryItemRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET cost_price = $2, updated_at = now() WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("update inventory cost: %w", err)
	}
	return nil
}

// List ítems ordenados por SKU.
func (r *InventoryItemRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items`
	if activeOnly {
		query += ` WHERE active`
	}
	query, args := paginate(query+` ORDER BY sku`, nil, limit, offset)
	return r.list(ctx, query, args...)
}

// ListLowStock ítems activos en o bajo su mínimo, mayor déficit primero.
func (r *InventoryItemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE active AND quantity_on_hand <= min_stock_level
		ORDER BY (min_stock_level - quantity_on_hand) DESC, sku`
	return r.list(ctx, query)
}

func (r *InventoryItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
