package entity

import "github.com/shopspring/decimal"

// PriceLevel nivel de precio de venta.
type PriceLevel string

const (
	PriceLevelRetail    PriceLevel = "RETAIL"
	PriceLevelFleet     PriceLevel = "FLEET"
	PriceLevelWholesale PriceLevel = "WHOLESALE"
)

// PriceLevels en el orden en que se muestran en la hoja de precios.
var PriceLevels = []PriceLevel{PriceLevelRetail, PriceLevelFleet, PriceLevelWholesale}

// MarkupSettings porcentajes de margen por nivel de precio (uno por empresa).
type MarkupSettings struct {
	CompanyID        string
	RetailPercent    decimal.Decimal
	FleetPercent     decimal.Decimal
	WholesalePercent decimal.Decimal
}

// PercentFor devuelve el porcentaje del nivel; 0 si el nivel no se reconoce.
func (s MarkupSettings) PercentFor(level PriceLevel) decimal.Decimal {
	switch level {
	case PriceLevelRetail:
		return s.RetailPercent
	case PriceLevelFleet:
		return s.FleetPercent
	case PriceLevelWholesale:
		return s.WholesalePercent
	default:
		return decimal.Zero
	}
}
