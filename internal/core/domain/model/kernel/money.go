package kernel

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every monetary value is rounded to.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds half away from zero to MoneyPlaces. Rounding happens at
// each computation step, never deferred to display.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// PercentOf returns base × percent / 100, rounded.
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	return RoundMoney(base.Mul(percent).Div(hundred))
}
