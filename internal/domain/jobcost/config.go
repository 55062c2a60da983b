package jobcost

import "github.com/shopspring/decimal"

// Table tabla de búsqueda material -> espesor -> valor.
type Table map[string]map[string]decimal.Decimal

// Lookup busca (material, espesor); ok=false si falta alguna de las dos claves.
func (t Table) Lookup(material, thickness string) (decimal.Decimal, bool) {
	byThickness, ok := t[material]
	if !ok {
		return decimal.Zero, false
	}
	v, ok := byThickness[thickness]
	return v, ok
}

// Config parámetros ya resueltos del costeo. Se pasa explícitamente a cada cálculo;
// el motor no lee configuración global.
type Config struct {
	MaterialCostPerInch      decimal.Decimal
	ConsumableCostPerPierce  decimal.Decimal
	SetupRatePerMinute       decimal.Decimal
	MachineRatePerMinute     decimal.Decimal
	OverheadPercent          decimal.Decimal
	MarkupPercent            decimal.Decimal
	ConsumablesCostPerMinute decimal.Decimal
	DefaultSetupMinutes      decimal.Decimal
	CutSpeeds                Table // pulgadas por minuto
	PierceSeconds            Table // segundos por perforación
	CalcVersion              string
}

// Valores por defecto cuando la empresa no configuró el campo.
var (
	DefaultMaterialCostPerInch      = decimal.RequireFromString("0.90")
	DefaultConsumableCostPerPierce  = decimal.RequireFromString("0.30")
	DefaultSetupRatePerMinute       = decimal.RequireFromString("1.75")
	DefaultMachineRatePerMinute     = decimal.RequireFromString("2.25")
	DefaultOverheadPercent          = decimal.NewFromInt(12)
	DefaultMarkupPercent            = decimal.NewFromInt(25)
	DefaultConsumablesCostPerMinute = decimal.RequireFromString("1.20")
	DefaultSetupMinutes             = decimal.NewFromInt(5)
)

// DefaultCalcVersion versión de cálculo cuando no se configura otra.
const DefaultCalcVersion = "plasma-v1"

// Settings configuración tal como la entrega el proveedor de settings: cualquier campo
// puede faltar (nil) y se completa con el valor por defecto en Resolve.
type Settings struct {
	MaterialCostPerInch      *decimal.Decimal `json:"material_cost_per_inch,omitempty"`
	ConsumableCostPerPierce  *decimal.Decimal `json:"consumable_cost_per_pierce,omitempty"`
	SetupRatePerMinute       *decimal.Decimal `json:"setup_rate_per_minute,omitempty"`
	MachineRatePerMinute     *decimal.Decimal `json:"machine_rate_per_minute,omitempty"`
	OverheadPercent          *decimal.Decimal `json:"overhead_percent,omitempty"`
	MarkupPercent            *decimal.Decimal `json:"markup_percent,omitempty"`
	ConsumablesCostPerMinute *decimal.Decimal `json:"consumables_cost_per_minute,omitempty"`
	DefaultSetupMinutes      *decimal.Decimal `json:"default_setup_minutes,omitempty"`
	CutSpeeds                Table            `json:"cut_speeds,omitempty"`
	PierceSeconds            Table            `json:"pierce_seconds,omitempty"`
	CalcVersion              string           `json:"calc_version,omitempty"`
}

// Resolve completa los campos faltantes con fallback y, si fallback tampoco
// los trae, con los valores por defecto del paquete.
func (s Settings) Resolve(fallback *Config) Config {
	base := DefaultConfig()
	if fallback != nil {
		base = *fallback
	}
	pick := func(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
		if v == nil {
			return def
		}
		return *v
	}
	cfg := Config{
		MaterialCostPerInch:      pick(s.MaterialCostPerInch, base.MaterialCostPerInch),
		ConsumableCostPerPierce:  pick(s.ConsumableCostPerPierce, base.ConsumableCostPerPierce),
		SetupRatePerMinute:       pick(s.SetupRatePerMinute, base.SetupRatePerMinute),
		MachineRatePerMinute:     pick(s.MachineRatePerMinute, base.MachineRatePerMinute),
		OverheadPercent:          pick(s.OverheadPercent, base.OverheadPercent),
		MarkupPercent:            pick(s.MarkupPercent, base.MarkupPercent),
		ConsumablesCostPerMinute: pick(s.ConsumablesCostPerMinute, base.ConsumablesCostPerMinute),
		DefaultSetupMinutes:      pick(s.DefaultSetupMinutes, base.DefaultSetupMinutes),
		CutSpeeds:                s.CutSpeeds,
		PierceSeconds:            s.PierceSeconds,
		CalcVersion:              s.CalcVersion,
	}
	if cfg.CutSpeeds == nil {
		cfg.CutSpeeds = base.CutSpeeds
	}
	if cfg.PierceSeconds == nil {
		cfg.PierceSeconds = base.PierceSeconds
	}
	if cfg.CalcVersion == "" {
		cfg.CalcVersion = base.CalcVersion
	}
	return cfg
}

// DefaultConfig configuración con todos los valores por defecto y tablas vacías.
func DefaultConfig() Config {
	return Config{
		MaterialCostPerInch:      DefaultMaterialCostPerInch,
		ConsumableCostPerPierce:  DefaultConsumableCostPerPierce,
		SetupRatePerMinute:       DefaultSetupRatePerMinute,
		MachineRatePerMinute:     DefaultMachineRatePerMinute,
		OverheadPercent:          DefaultOverheadPercent,
		MarkupPercent:            DefaultMarkupPercent,
		ConsumablesCostPerMinute: DefaultConsumablesCostPerMinute,
		DefaultSetupMinutes:      DefaultSetupMinutes,
		CutSpeeds:                Table{},
		PierceSeconds:            Table{},
		CalcVersion:              DefaultCalcVersion,
	}
}
