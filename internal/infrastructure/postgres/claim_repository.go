package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ReturnRepository        = (*ReturnRepo)(nil)
	_ repository.WarrantyClaimRepository = (*WarrantyClaimRepo)(nil)
)

// ReturnRepo lectura de devoluciones a proveedor con sus líneas.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, company_id, vendor_id, status, credit_amount, credit_memo_amount, is_active, created_at`

// GetByID obtiene una devolución con sus líneas.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	list, err := r.list(ctx, `SELECT `+returnColumns+` FROM vendor_returns WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByCompany lista todas las devoluciones de la empresa, activas e inactivas.
func (r *ReturnRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Return, error) {
	return r.list(ctx, `SELECT `+returnColumns+` FROM vendor_returns WHERE company_id = $1 ORDER BY created_at`, companyID)
}

func (r *ReturnRepo) list(ctx context.Context, query string, arg string) ([]*entity.Return, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	var list []*entity.Return
	byID := map[string]*entity.Return{}
	for rows.Next() {
		var x entity.Return
		var vendorID *string
		var credit, memo decimal.NullDecimal
		if err := rows.Scan(&x.ID, &x.CompanyID, &vendorID, &x.Status, &credit, &memo, &x.IsActive, &x.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan return: %w", err)
		}
		x.VendorID = derefString(vendorID)
		x.CreditAmount = decimalPtr(credit)
		x.CreditMemoAmount = decimalPtr(memo)
		list = append(list, &x)
		byID[x.ID] = &x
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	lines, err := r.q.Query(ctx, `
		SELECT id, return_id, part_id, quantity, is_active
		FROM vendor_return_lines WHERE return_id = ANY($1)
		ORDER BY id`, keys(byID))
	if err != nil {
		return nil, fmt.Errorf("list return lines: %w", err)
	}
	defer lines.Close()
	for lines.Next() {
		var l entity.ReturnLine
		if err := lines.Scan(&l.ID, &l.ReturnID, &l.PartID, &l.Quantity, &l.IsActive); err != nil {
			return nil, fmt.Errorf("scan return line: %w", err)
		}
		if parent, ok := byID[l.ReturnID]; ok {
			parent.Lines = append(parent.Lines, l)
		}
	}
	return list, lines.Err()
}

// WarrantyClaimRepo lectura de reclamos de garantía con sus líneas.
type WarrantyClaimRepo struct {
	q Querier
}

// NewWarrantyClaimRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarrantyClaimRepository(q Querier) *WarrantyClaimRepo {
	return &WarrantyClaimRepo{q: q}
}

const claimColumns = `id, company_id, vendor_id, status, approved_amount, reimbursed_amount, is_active, created_at`

// GetByID obtiene un reclamo con sus líneas.
func (r *WarrantyClaimRepo) GetByID(ctx context.Context, id string) (*entity.WarrantyClaim, error) {
	list, err := r.list(ctx, `SELECT `+claimColumns+` FROM warranty_claims WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByCompany lista todos los reclamos de la empresa, activos e inactivos.
func (r *WarrantyClaimRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.WarrantyClaim, error) {
	return r.list(ctx, `SELECT `+claimColumns+` FROM warranty_claims WHERE company_id = $1 ORDER BY created_at`, companyID)
}

func (r *WarrantyClaimRepo) list(ctx context.Context, query string, arg string) ([]*entity.WarrantyClaim, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list warranty claims: %w", err)
	}
	var list []*entity.WarrantyClaim
	byID := map[string]*entity.WarrantyClaim{}
	for rows.Next() {
		var x entity.WarrantyClaim
		var vendorID *string
		var approved, reimbursed decimal.NullDecimal
		if err := rows.Scan(&x.ID, &x.CompanyID, &vendorID, &x.Status, &approved, &reimbursed, &x.IsActive, &x.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan warranty claim: %w", err)
		}
		x.VendorID = derefString(vendorID)
		x.ApprovedAmount = decimalPtr(approved)
		x.ReimbursedAmount = decimalPtr(reimbursed)
		list = append(list, &x)
		byID[x.ID] = &x
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	lines, err := r.q.Query(ctx, `
		SELECT id, claim_id, part_id, quantity, is_active
		FROM warranty_claim_lines WHERE claim_id = ANY($1)
		ORDER BY id`, keys(byID))
	if err != nil {
		return nil, fmt.Errorf("list warranty claim lines: %w", err)
	}
	defer lines.Close()
	for lines.Next() {
		var l entity.WarrantyClaimLine
		if err := lines.Scan(&l.ID, &l.ClaimID, &l.PartID, &l.Quantity, &l.IsActive); err != nil {
			return nil, fmt.Errorf("scan warranty claim line: %w", err)
		}
		if parent, ok := byID[l.ClaimID]; ok {
			parent.Lines = append(parent.Lines, l)
		}
	}
	return list, lines.Err()
}

func keys[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

