package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine línea de una orden. En órdenes de compra Quantity es la cantidad pedida
// y ReceivedQuantity nunca la supera.
// UnitCost, UnitPrice y CoreCharge se copian del repuesto al agregar la línea y no se recalculan.
type OrderLine struct {
	ID               string
	OrderID          string
	PartID           string
	Description      string
	Quantity         int
	ReceivedQuantity int
	UnitCost         decimal.Decimal
	UnitPrice        decimal.Decimal
	CoreCharge       decimal.Decimal
	Warranty         bool
	CoreReturned     bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ExtendedAmount monto extendido de la línea según el tipo de orden.
// Compras: Quantity * UnitCost. Ventas/trabajo: Quantity * (UnitPrice + CoreCharge),
// sin el cargo de casco si ya fue devuelto.
func (l OrderLine) ExtendedAmount(kind OrderKind) decimal.Decimal {
	qty := decimal.NewFromInt(int64(l.Quantity))
	if kind == OrderKindPurchase {
		return qty.Mul(l.UnitCost)
	}
	unit := l.UnitPrice
	if !l.CoreReturned {
		unit = unit.Add(l.CoreCharge)
	}
	return qty.Mul(unit)
}
