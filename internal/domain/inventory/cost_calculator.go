package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost recalcula el costo promedio ponderado al recibir mercancía:
//
//	nuevo = (existencia * costoActual + recibido * costoRecibido) / (existencia + recibido)
//
// Una existencia negativa (backorder) no aporta peso: el backorder se cubre con las
// unidades recibidas, así que cuenta como 0.
func WeightedAverageCost(onHand int, currentCost decimal.Decimal, receivedQty int, receivedCost decimal.Decimal) decimal.Decimal {
	if onHand < 0 {
		onHand = 0
	}
	stock := decimal.NewFromInt(int64(onHand))
	in := decimal.NewFromInt(int64(receivedQty))
	sum := stock.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(currentCost).Add(in.Mul(receivedCost))
	return num.Div(sum).Round(4)
}
