package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ReturnRepository puerto de lectura de devoluciones a proveedor (con sus líneas).
type ReturnRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	// ListByCompany devuelve todas las devoluciones de la empresa, incluidas las inactivas.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Return, error)
}

// WarrantyClaimRepository puerto de lectura de reclamos de garantía (con sus líneas).
type WarrantyClaimRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WarrantyClaim, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.WarrantyClaim, error)
}
