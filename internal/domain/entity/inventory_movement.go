package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario generados por el motor de órdenes.
const (
	MovementTypeIN      = "IN"      // devolución al stock (línea eliminada o reducida)
	MovementTypeOUT     = "OUT"     // salida por línea de venta o de trabajo
	MovementTypeRECEIPT = "RECEIPT" // recepción contra orden de compra
)

// InventoryMovement registro de auditoría de cada cambio de QuantityOnHand.
// Quantity es el delta con signo aplicado a la existencia.
type InventoryMovement struct {
	ID        string
	OrderID   string
	LineID    string
	PartID    string
	Type      string
	Quantity  int
	UnitCost  decimal.Decimal
	CreatedAt time.Time
}
