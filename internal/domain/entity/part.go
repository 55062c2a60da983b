package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del catálogo del taller.
// Cost, LastCost y AvgCost pueden venir nulos o desactualizados; el precio de venta
// se deriva de ellos con la cascada de costo base (ver domain/pricing).
// QuantityOnHand puede ser negativo: representa unidades en backorder.
type Part struct {
	ID               string
	CompanyID        string
	SKU              string
	Name             string
	Cost             *decimal.Decimal // costo estático de catálogo
	LastCost         *decimal.Decimal // costo de la última recepción
	AvgCost          *decimal.Decimal // costo promedio ponderado
	SellingPrice     decimal.Decimal
	QuantityOnHand   int
	CoreRequired     bool
	CoreChargeAmount decimal.Decimal // cargo reembolsable por casco
	IsActive         bool            // nunca se borra, solo se desactiva
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CostOrZero devuelve Cost o cero si es nulo.
func (p Part) CostOrZero() decimal.Decimal {
	if p.Cost == nil {
		return decimal.Zero
	}
	return *p.Cost
}
