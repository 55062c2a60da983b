package dto

import "github.com/shopspring/decimal"

// PriceQuoteResponse precio de un repuesto para un nivel.
// Price y CostBasis son null cuando el repuesto no tiene costo base.
type PriceQuoteResponse struct {
	PartID        string           `json:"part_id"`
	Level         string           `json:"level"`
	Price         *decimal.Decimal `json:"price"`
	CostBasis     *decimal.Decimal `json:"cost_basis"`
	BasisSource   string           `json:"basis_source"` // AVG_COST|LAST_COST|COST|NONE
	MarkupPercent decimal.Decimal  `json:"markup_percent"`
	Warnings      []string         `json:"warnings"`
}

// PriceSheetResponse hoja de precios de un repuesto en todos los niveles.
type PriceSheetResponse struct {
	PartID string               `json:"part_id"`
	SKU    string               `json:"sku"`
	Name   string               `json:"name"`
	Quotes []PriceQuoteResponse `json:"quotes"`
}
