package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/textnorm"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo órdenes de venta y sus líneas sobre PostgreSQL (usable con pool o tx).
// Receta y atributos de lente se guardan como JSONB.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const orderColumns = `id, patient_id, order_date, status, subtotal, discount, total, amount_paid,
	balance_due, created_by, shift_id, notes, created_at, updated_at`

const orderItemColumns = `id, order_id, kind, inventory_item_id, product_id, description, prescription,
	lens_attributes, quantity, unit_price, subtotal, restocked`

func scanOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.OrderDate, &o.Status, &o.Subtotal, &o.Discount, &o.Total,
		&o.AmountPaid, &o.BalanceDue, &o.CreatedBy, &o.ShiftID, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta cabecera y líneas.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.PatientID, o.OrderDate, o.Status, o.Subtotal, o.Discount, o.Total, o.AmountPaid,
		o.BalanceDue, o.CreatedBy, o.ShiftID, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	for _, it := range o.Items {
		it.OrderID = o.ID
		if err := r.CreateItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// Update persiste estado y montos de la cabecera.
func (r *SalesOrderRepo) Update(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders SET status = $2, subtotal = $3, discount = $4, total = $5, amount_paid = $6,
			balance_due = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.Status, o.Subtotal, o.Discount, o.Total, o.AmountPaid, o.BalanceDue, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem inserta una línea.
func (r *SalesOrderRepo) CreateItem(ctx context.Context, it *entity.SalesOrderItem) error {
	query := `
		INSERT INTO sales_order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.OrderID, it.Kind, nullString(it.InventoryItemID), nullString(it.ProductID), it.Description,
		it.Prescription, lensAttributes(it.LensAttributes), it.Quantity, it.UnitPrice, it.Subtotal, it.Restocked,
	)
	if err != nil {
		return fmt.Errorf("insert sales order item: %w", err)
	}
	return nil
}

// UpdateItem persiste cantidad, precio, subtotal, descripción, receta y marca de reingreso.
func (r *SalesOrderRepo) UpdateItem(ctx context.Context, it *entity.SalesOrderItem) error {
	query := `
		UPDATE sales_order_items SET description = $2, prescription = $3, lens_attributes = $4,
			quantity = $5, unit_price = $6, subtotal = $7, restocked = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.Description, it.Prescription, lensAttributes(it.LensAttributes),
		it.Quantity, it.UnitPrice, it.Subtotal, it.Restocked,
	)
	if err != nil {
		return fmt.Errorf("update sales order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina una línea.
func (r *SalesOrderRepo) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_order_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete sales order item: %w", err)
	}
	return nil
}

// GetByID orden con sus líneas en orden de alta.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM sales_orders WHERE id = $1`, id)
}

// GetForUpdate como GetByID bloqueando la cabecera.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *SalesOrderRepo) get(ctx context.Context, query, id string) (*entity.SalesOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *SalesOrderRepo) items(ctx context.Context, orderID string) ([]*entity.SalesOrderItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderItemColumns+` FROM sales_order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrderItem
	for rows.Next() {
		var (
			it          entity.SalesOrderItem
			invID, prID *string
			attrs       map[string]string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Kind, &invID, &prID, &it.Description, &it.Prescription,
			&attrs, &it.Quantity, &it.UnitPrice, &it.Subtotal, &it.Restocked); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		it.InventoryItemID = derefString(invID)
		it.ProductID = derefString(prID)
		it.LensAttributes = attrs
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Find órdenes (sin líneas) por rango de fechas, estado y paciente, más recientes primero.
func (r *SalesOrderRepo) Find(ctx context.Context, f repository.OrderFilter) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + prefixed("o.", orderColumns) + `
		FROM sales_orders o LEFT JOIN patients p ON p.id = o.patient_id WHERE true`
	var args []any
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND o.order_date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND o.order_date < $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if q := textnorm.Fold(f.PatientQuery); q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(" AND p.search_key LIKE $%d", len(args))
	}
	query += " ORDER BY o.order_date DESC"
	query, args = paginate(query, args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CountByShift número de órdenes abiertas en el turno.
func (r *SalesOrderRepo) CountByShift(ctx context.Context, shiftID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales_orders WHERE shift_id = $1`, shiftID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}

// lensAttributes nil en lugar de un mapa vacío para guardar NULL.
func lensAttributes(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}
