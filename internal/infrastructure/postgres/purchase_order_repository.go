package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra con sus líneas (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseColumns = `id, supplier, order_date, status, notes, created_by, created_at, updated_at`

func scanPurchase(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	if err := row.Scan(&po.ID, &po.Supplier, &po.OrderDate, &po.Status, &po.Notes, &po.CreatedBy,
		&po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	return &po, nil
}

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		po.ID, po.Supplier, po.OrderDate, po.Status, po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, it := range po.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, inventory_item_id, quantity_ordered,
				quantity_received, unit_cost, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, po.ID, it.InventoryItemID, it.QuantityOrdered, it.QuantityReceived, it.UnitCost, it.Status,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// Update persiste estado de cabecera y cantidades/estado de cada línea.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		po.ID, po.Status, po.Notes, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for _, it := range po.Items {
		if _, err := r.q.Exec(ctx,
			`UPDATE purchase_order_items SET quantity_received = $2, status = $3 WHERE id = $1`,
			it.ID, it.QuantityReceived, it.Status,
		); err != nil {
			return fmt.Errorf("update purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID orden de compra con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate como GetByID bloqueando la cabecera.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, po *entity.PurchaseOrder) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, inventory_item_id, quantity_ordered, quantity_received, unit_cost, status
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY position`, po.ID)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.InventoryItemID, &it.QuantityOrdered,
			&it.QuantityReceived, &it.UnitCost, &it.Status); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, &it)
	}
	return rows.Err()
}

// List órdenes de compra (con líneas), opcionalmente por estado, más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, status entity.PurchaseStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_orders`
	var args []any
	if status != "" {
		args = append(args, status)
		query += ` WHERE status = $1`
	}
	query, args = paginate(query+` ORDER BY order_date DESC`, args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Las líneas se cargan después de cerrar rows: una tx no admite dos consultas abiertas.
	for _, po := range list {
		if err := r.loadItems(ctx, po); err != nil {
			return nil, err
		}
	}
	return list, nil
}
