package utils

import "github.com/shopspring/decimal"

// DecoratorShare is the fraction of a service cost paid to the assigned decorator.
var DecoratorShare = decimal.RequireFromString("0.7")

// DecoratorEarning returns cost multiplied by DecoratorShare.
func DecoratorEarning(cost float64) float64 {
	return decimal.NewFromFloat(cost).Mul(DecoratorShare).Round(2).InexactFloat64()
}

// ToMinorUnits converts a major-unit amount to the provider's integer minor units.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// SumAmounts adds amounts without accumulating float error.
func SumAmounts(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}
