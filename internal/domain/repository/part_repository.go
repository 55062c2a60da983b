package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para Part (DIP).
// Los Get devuelven (nil, nil) si el repuesto no existe.
type PartRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Part, error)

	// GetForUpdate bloquea las filas (SELECT ... FOR UPDATE) en orden de ID para que dos
	// transacciones sobre los mismos repuestos no se crucen. Los IDs inexistentes se omiten.
	GetForUpdate(ctx context.Context, ids []string) ([]*entity.Part, error)

	// UpdateStockAndCost persiste existencia, último costo y costo promedio (valores absolutos).
	UpdateStockAndCost(ctx context.Context, part *entity.Part) error
}
