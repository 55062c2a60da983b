package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, company_id, sku, name, cost, last_cost, avg_cost, selling_price,
	quantity_on_hand, core_required, core_charge_amount, is_active, created_at, updated_at`

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea los repuestos en orden de ID. Solo tiene efecto dentro de una tx.
func (r *PartRepo) GetForUpdate(ctx context.Context, ids []string) ([]*entity.Part, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+partColumns+` FROM parts WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStockAndCost guarda existencia y costos con valores absolutos.
func (r *PartRepo) UpdateStockAndCost(ctx context.Context, p *entity.Part) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE parts SET quantity_on_hand = $2, last_cost = $3, avg_cost = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.QuantityOnHand, p.LastCost, p.AvgCost, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	var cost, lastCost, avgCost decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &cost, &lastCost, &avgCost, &p.SellingPrice,
		&p.QuantityOnHand, &p.CoreRequired, &p.CoreChargeAmount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Cost = decimalPtr(cost)
	p.LastCost = decimalPtr(lastCost)
	p.AvgCost = decimalPtr(avgCost)
	return &p, nil
}
