// Package pricing calcula precios de venta de repuestos a partir de su costo base
// y del porcentaje de margen configurado por nivel de precio.
package pricing

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// BasisSource campo del repuesto usado como costo base.
type BasisSource string

const (
	BasisAvgCost  BasisSource = "AVG_COST"
	BasisLastCost BasisSource = "LAST_COST"
	BasisCost     BasisSource = "COST"
	BasisNone     BasisSource = "NONE"
)

// Advertencias del cálculo. No abortan: el precio se devuelve igual cuando existe.
const (
	WarnNoCostBasis = "No cost basis available"
	WarnBelowCost   = "Calculated price is below cost basis"
)

// Quote resultado de PriceForLevel. Price es nil cuando no hay costo base.
type Quote struct {
	Level         entity.PriceLevel
	Price         *decimal.Decimal
	Basis         *decimal.Decimal
	BasisSource   BasisSource
	MarkupPercent decimal.Decimal
	Warnings      []string
}

// CostBasis aplica la cascada avg_cost > last_cost > cost; cada campo cuenta solo si es > 0.
func CostBasis(part entity.Part) (*decimal.Decimal, BasisSource) {
	switch {
	case money.Positive(part.AvgCost):
		return part.AvgCost, BasisAvgCost
	case money.Positive(part.LastCost):
		return part.LastCost, BasisLastCost
	case money.Positive(part.Cost):
		return part.Cost, BasisCost
	}
	return nil, BasisNone
}

// PriceForLevel calcula el precio del repuesto para el nivel indicado.
// Un nivel desconocido usa margen 0. Si el precio redondeado queda por debajo del costo
// base se advierte pero no se corrige.
func PriceForLevel(part entity.Part, settings entity.MarkupSettings, level entity.PriceLevel) Quote {
	q := Quote{
		Level:         level,
		MarkupPercent: settings.PercentFor(level),
	}
	basis, source := CostBasis(part)
	q.BasisSource = source
	if basis == nil {
		q.Warnings = append(q.Warnings, WarnNoCostBasis)
		return q
	}
	b := *basis
	q.Basis = &b

	price := money.Round2(money.ApplyPercent(b, q.MarkupPercent))
	q.Price = &price
	if price.LessThan(b) {
		q.Warnings = append(q.Warnings, WarnBelowCost)
	}
	return q
}

// PriceAllLevels devuelve la hoja de precios del repuesto (un Quote por nivel).
func PriceAllLevels(part entity.Part, settings entity.MarkupSettings) []Quote {
	out := make([]Quote, 0, len(entity.PriceLevels))
	for _, level := range entity.PriceLevels {
		out = append(out, PriceForLevel(part, settings, level))
	}
	return out
}
