package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para la cabecera de órdenes.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)

	// GetForUpdate bloquea la fila de la orden: todas las mutaciones de líneas de una misma
	// orden quedan serializadas mientras dure la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)

	// Update persiste estado, total y marcas de tiempo.
	Update(ctx context.Context, order *entity.Order) error
}

// OrderLineRepository define el puerto de persistencia para líneas de órdenes.
type OrderLineRepository interface {
	// ListByOrder devuelve todas las líneas (activas e inactivas) en orden de creación.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error)

	// Upsert inserta la línea o actualiza cantidades, flags y estado activo si ya existe.
	Upsert(ctx context.Context, line *entity.OrderLine) error
}
