// Package orderstatus deriva el estado de recepción de una orden de compra a partir de sus líneas.
package orderstatus

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// Derive devuelve OPEN, PARTIALLY_RECEIVED o RECEIVED.
// Una orden cerrada explícitamente (CLOSED) se reporta RECEIVED sin mirar las líneas.
// Solo cuentan las líneas activas.
func Derive(order entity.Order, lines []entity.OrderLine) entity.OrderStatus {
	if order.Status == entity.OrderStatusClosed {
		return entity.OrderStatusReceived
	}
	var ordered, received int
	for _, l := range lines {
		if !l.IsActive {
			continue
		}
		ordered += l.Quantity
		received += l.ReceivedQuantity
	}
	switch {
	case ordered == 0 || received == 0:
		return entity.OrderStatusOpen
	case received < ordered:
		return entity.OrderStatusPartiallyReceived
	default:
		return entity.OrderStatusReceived
	}
}

// Rank orden de los estados derivados: OPEN < PARTIALLY_RECEIVED < RECEIVED.
// Cualquier otro estado devuelve -1.
func Rank(s entity.OrderStatus) int {
	switch s {
	case entity.OrderStatusOpen:
		return 0
	case entity.OrderStatusPartiallyReceived:
		return 1
	case entity.OrderStatusReceived:
		return 2
	}
	return -1
}
