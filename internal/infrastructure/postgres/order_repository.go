package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderLineRepository = (*OrderLineRepo)(nil)
)

const orderColumns = `id, company_id, kind, number, customer_id, vendor_id, status, total, notes,
	invoiced_at, closed_at, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene la cabecera de una orden.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden bloqueando la fila hasta el fin de la tx.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	var o entity.Order
	var customerID, vendorID, notes *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.Kind, &o.Number, &customerID, &vendorID, &o.Status, &o.Total, &notes,
		&o.InvoicedAt, &o.ClosedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.CustomerID = derefString(customerID)
	o.VendorID = derefString(vendorID)
	o.Notes = derefString(notes)
	return &o, nil
}

// Update persiste estado, total y marcas de tiempo de la orden.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, total = $3, invoiced_at = $4, closed_at = $5, updated_at = $6
		WHERE id = $1`,
		o.ID, o.Status, o.Total, o.InvoicedAt, o.ClosedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// OrderLineRepo implementación del puerto OrderLineRepository sobre PostgreSQL.
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

// ListByOrder lista todas las líneas de la orden (activas e inactivas) por fecha de creación.
func (r *OrderLineRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, part_id, description, quantity, received_quantity, unit_cost, unit_price,
		       core_charge, warranty, core_returned, is_active, created_at, updated_at
		FROM order_lines WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.PartID, &l.Description, &l.Quantity, &l.ReceivedQuantity, &l.UnitCost, &l.UnitPrice,
			&l.CoreCharge, &l.Warranty, &l.CoreReturned, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Upsert inserta la línea; si ya existe actualiza solo los campos mutables.
// Precio, costo y casco quedan congelados desde la inserción.
func (r *OrderLineRepo) Upsert(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_lines (id, order_id, part_id, description, quantity, received_quantity, unit_cost, unit_price,
		                         core_charge, warranty, core_returned, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			quantity          = EXCLUDED.quantity,
			received_quantity = EXCLUDED.received_quantity,
			warranty          = EXCLUDED.warranty,
			core_returned     = EXCLUDED.core_returned,
			is_active         = EXCLUDED.is_active,
			updated_at        = EXCLUDED.updated_at`,
		l.ID, l.OrderID, l.PartID, l.Description, l.Quantity, l.ReceivedQuantity, l.UnitCost, l.UnitPrice,
		l.CoreCharge, l.Warranty, l.CoreReturned, l.IsActive, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert order line: %w", err)
	}
	return nil
}
