// Package jobcost costea líneas de trabajos de corte por plasma: material, consumibles,
// mano de obra y gastos generales, con tablas de velocidad de corte y tiempo de perforación.
//
// CalculateJob es una función pura: no guarda estado entre llamadas y nunca falla.
// Si falta un dato o una entrada de tabla, el cálculo sigue con 0 y acumula una advertencia.
package jobcost

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Códigos de advertencia.
const (
	WarnMissingMaterial     = "MISSING_MATERIAL"
	WarnMissingThickness    = "MISSING_THICKNESS"
	WarnSpeedLookupMissing  = "SPEED_LOOKUP_MISSING"
	WarnPierceLookupMissing = "PIERCE_LOOKUP_MISSING"
)

var sixty = decimal.NewFromInt(60)

// Warning advertencia asociada a una línea.
type Warning struct {
	LineID  string `json:"line_id"`
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Totals suma de cada campo de costo y precio sobre todas las líneas.
type Totals struct {
	MaterialCost    decimal.Decimal `json:"material_cost"`
	ConsumablesCost decimal.Decimal `json:"consumables_cost"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	OverheadCost    decimal.Decimal `json:"overhead_cost"`
	SellPriceTotal  decimal.Decimal `json:"sell_price_total"`
	MachineMinutes  decimal.Decimal `json:"machine_minutes"`
}

// Result salida de CalculateJob.
type Result struct {
	Lines    []entity.PlasmaJobLine `json:"lines"`
	Totals   Totals                 `json:"totals"`
	Warnings []Warning              `json:"warnings"`
}

// CalculateJob recalcula cada línea y los totales. Las líneas de entrada no se modifican.
func CalculateJob(lines []entity.PlasmaJobLine, cfg Config) Result {
	res := Result{
		Lines:    make([]entity.PlasmaJobLine, 0, len(lines)),
		Warnings: []Warning{},
	}
	var sumMaterial, sumConsumables, sumLabor, sumOverhead, sumSell, sumMinutes decimal.Decimal
	for i, in := range lines {
		out, warns := calculateLine(i, in, cfg)
		res.Lines = append(res.Lines, out)
		res.Warnings = append(res.Warnings, warns...)

		sumMaterial = sumMaterial.Add(out.MaterialCost)
		sumConsumables = sumConsumables.Add(out.ConsumablesCost)
		sumLabor = sumLabor.Add(out.LaborCost)
		sumOverhead = sumOverhead.Add(out.OverheadCost)
		sumSell = sumSell.Add(out.SellPriceTotal)
		sumMinutes = sumMinutes.Add(out.MachineMinutes)
	}
	res.Totals = Totals{
		MaterialCost:    money.Round2(sumMaterial),
		ConsumablesCost: money.Round2(sumConsumables),
		LaborCost:       money.Round2(sumLabor),
		OverheadCost:    money.Round2(sumOverhead),
		SellPriceTotal:  money.Round2(sumSell),
		MachineMinutes:  sumMinutes,
	}
	return res
}

// IsStale indica si la línea se calculó con otra versión de cálculo.
func IsStale(line entity.PlasmaJobLine, cfg Config) bool {
	return line.CalcVersion != cfg.CalcVersion
}

func calculateLine(index int, line entity.PlasmaJobLine, cfg Config) (entity.PlasmaJobLine, []Warning) {
	var warns []Warning
	warn := func(code, msg string) {
		warns = append(warns, Warning{LineID: line.ID, Index: index, Code: code, Message: msg})
	}

	setupMinutes := cfg.DefaultSetupMinutes
	if line.SetupMinutes != nil {
		setupMinutes = *line.SetupMinutes
	}
	qty := decimal.NewFromInt(int64(line.Qty))
	pierces := decimal.NewFromInt(int64(line.PierceCount))

	// Minutos de máquina: con override se respeta el valor de la línea y no se advierte.
	machineMinutes := line.MachineMinutes
	if !line.OverrideMachineMinutes {
		derived := decimal.Zero
		if line.MaterialType == "" {
			warn(WarnMissingMaterial, "la línea no tiene material")
		}
		if line.Thickness == "" {
			warn(WarnMissingThickness, "la línea no tiene espesor")
		}
		if line.MaterialType != "" && line.Thickness != "" {
			speed, ok := cfg.CutSpeeds.Lookup(line.MaterialType, line.Thickness)
			if !ok || !speed.GreaterThan(decimal.Zero) {
				warn(WarnSpeedLookupMissing, "sin velocidad de corte para "+line.MaterialType+" "+line.Thickness)
			} else if line.CutLength.GreaterThan(decimal.Zero) {
				derived = line.CutLength.Div(speed)
			}
		}

		pierceMinutes := decimal.Zero
		if line.MaterialType != "" && line.Thickness != "" {
			secs, ok := cfg.PierceSeconds.Lookup(line.MaterialType, line.Thickness)
			if ok {
				pierceMinutes = secs.Mul(pierces).Div(sixty)
			} else if line.PierceCount > 0 {
				warn(WarnPierceLookupMissing, "sin tiempo de perforación para "+line.MaterialType+" "+line.Thickness)
			}
		}
		machineMinutes = derived.Add(pierceMinutes)
	}

	materialCost := money.Round2(line.CutLength.Mul(cfg.MaterialCostPerInch).Mul(qty))

	runtimeConsumables := line.RuntimeConsumablesCost
	if !line.OverrideConsumablesCost {
		runtimeConsumables = money.Round2(machineMinutes.Mul(cfg.ConsumablesCostPerMinute))
	}
	baseConsumables := pierces.Mul(cfg.ConsumableCostPerPierce).Mul(qty)
	consumablesCost := money.Round2(baseConsumables.Add(runtimeConsumables))

	laborCost := money.Round2(setupMinutes.Mul(cfg.SetupRatePerMinute).Add(machineMinutes.Mul(cfg.MachineRatePerMinute)))
	overheadCost := money.Round2(money.PercentOf(materialCost.Add(consumablesCost).Add(laborCost), cfg.OverheadPercent))

	rawEach := materialCost.Add(consumablesCost).Add(laborCost).Add(overheadCost)
	sellEach := money.Round2(money.ApplyPercent(rawEach, cfg.MarkupPercent))
	if line.Overrides.SellPriceEach != nil {
		sellEach = *line.Overrides.SellPriceEach
	}
	sellTotal := money.Round2(sellEach.Mul(qty))
	if line.Overrides.SellPriceTotal != nil {
		sellTotal = *line.Overrides.SellPriceTotal
	}

	out := line
	out.MachineMinutes = machineMinutes
	out.RuntimeConsumablesCost = runtimeConsumables
	out.MaterialCost = materialCost
	out.ConsumablesCost = consumablesCost
	out.LaborCost = laborCost
	out.OverheadCost = overheadCost
	out.SellPriceEach = sellEach
	out.SellPriceTotal = sellTotal
	out.CalcVersion = cfg.CalcVersion
	return out, warns
}
