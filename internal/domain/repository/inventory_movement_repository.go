package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryMovement, error)
}

// ReceivingRepository define el puerto de persistencia para recepciones de compras.
type ReceivingRepository interface {
	Create(ctx context.Context, entry *entity.ReceivingEntry) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ReceivingEntry, error)
}
