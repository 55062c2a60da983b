package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var (
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
	_ repository.ReceivingRepository         = (*ReceivingRepo)(nil)
)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, order_id, line_id, part_id, type, quantity, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.OrderID, m.LineID, m.PartID, m.Type, m.Quantity, m.UnitCost, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByOrder lista los movimientos generados por una orden, del más antiguo al más reciente.
func (r *InventoryMovementRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, line_id, part_id, type, quantity, unit_cost, created_at
		FROM inventory_movements WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.OrderID, &m.LineID, &m.PartID, &m.Type, &m.Quantity, &m.UnitCost, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ReceivingRepo implementación del registro de recepciones sobre PostgreSQL.
type ReceivingRepo struct {
	q Querier
}

// NewReceivingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivingRepository(q Querier) *ReceivingRepo {
	return &ReceivingRepo{q: q}
}

// Create persiste una recepción.
func (r *ReceivingRepo) Create(ctx context.Context, e *entity.ReceivingEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receiving_entries (id, order_id, line_id, part_id, vendor_id, quantity, unit_cost, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.OrderID, e.LineID, e.PartID, nullString(e.VendorID), e.Quantity, e.UnitCost, e.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create receiving entry: %w", err)
	}
	return nil
}

// ListByOrder lista las recepciones de una orden de compra.
func (r *ReceivingRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ReceivingEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, line_id, part_id, vendor_id, quantity, unit_cost, received_at
		FROM receiving_entries WHERE order_id = $1
		ORDER BY received_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receiving entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReceivingEntry
	for rows.Next() {
		var e entity.ReceivingEntry
		var vendorID *string
		if err := rows.Scan(&e.ID, &e.OrderID, &e.LineID, &e.PartID, &vendorID, &e.Quantity, &e.UnitCost, &e.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan receiving entry: %w", err)
		}
		e.VendorID = derefString(vendorID)
		list = append(list, &e)
	}
	return list, rows.Err()
}
