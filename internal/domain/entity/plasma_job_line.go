package entity

import "github.com/shopspring/decimal"

// PlasmaJobOverrides valores de precio fijados manualmente; siempre ganan sobre el cálculo.
type PlasmaJobOverrides struct {
	SellPriceEach  *decimal.Decimal `json:"sell_price_each,omitempty"`
	SellPriceTotal *decimal.Decimal `json:"sell_price_total,omitempty"`
}

// PlasmaJobLine línea de un trabajo de corte por plasma.
// Los campos de costo y precio los escribe el motor de costeo; solo se editan
// a mano a través de los flags de override.
type PlasmaJobLine struct {
	ID                      string             `json:"id"`
	MaterialType            string             `json:"material_type"`
	Thickness               string             `json:"thickness"`
	CutLength               decimal.Decimal    `json:"cut_length"` // pulgadas
	PierceCount             int                `json:"pierce_count"`
	Qty                     int                `json:"qty"`
	SetupMinutes            *decimal.Decimal   `json:"setup_minutes,omitempty"`
	MachineMinutes          decimal.Decimal    `json:"machine_minutes"`
	OverrideMachineMinutes  bool               `json:"override_machine_minutes"`
	RuntimeConsumablesCost  decimal.Decimal    `json:"runtime_consumables_cost"` // manual si OverrideConsumablesCost
	OverrideConsumablesCost bool               `json:"override_consumables_cost"`
	Overrides               PlasmaJobOverrides `json:"overrides"`

	// Salidas del motor.
	MaterialCost    decimal.Decimal `json:"material_cost"`
	ConsumablesCost decimal.Decimal `json:"consumables_cost"` // perforaciones + consumible en runtime
	LaborCost       decimal.Decimal `json:"labor_cost"`
	OverheadCost    decimal.Decimal `json:"overhead_cost"`
	SellPriceEach   decimal.Decimal `json:"sell_price_each"`
	SellPriceTotal  decimal.Decimal `json:"sell_price_total"`
	CalcVersion     string          `json:"calc_version"`
}
