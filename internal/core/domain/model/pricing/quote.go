package pricing

import (
	"eventrent/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Quote is a base price with the platform margin layered on top.
type Quote struct {
	BasePrice     decimal.Decimal
	MarginPercent decimal.Decimal
	MarginAmount  decimal.Decimal
	FinalTotal    decimal.Decimal
}

// ApplyMargin computes amount = base × pct / 100 and total = base + amount,
// rounding each to two places as it is produced.
func ApplyMargin(base, marginPercent decimal.Decimal) Quote {
	base = kernel.RoundMoney(base)
	amount := kernel.PercentOf(base, marginPercent)
	return Quote{
		BasePrice:     base,
		MarginPercent: marginPercent,
		MarginAmount:  amount,
		FinalTotal:    kernel.RoundMoney(base.Add(amount)),
	}
}
