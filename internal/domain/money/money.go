// Package money reúne las reglas de redondeo de moneda usadas por todo el motor.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales, mitad alejándose de cero (1.005 -> 1.01, -1.005 -> -1.01).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApplyPercent devuelve base * (1 + percent/100), sin redondear.
func ApplyPercent(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(percent.Div(hundred)))
}

// PercentOf devuelve base * percent/100, sin redondear.
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(hundred)
}

// Positive indica si d no es nulo y es mayor que cero.
func Positive(d *decimal.Decimal) bool {
	return d != nil && d.GreaterThan(decimal.Zero)
}
