package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places every ledger amount carries.
const MoneyPrecision = 2

// RatePrecision is the number of decimal places of an effective tax rate.
const RatePrecision = 4

var hundred = decimal.NewFromInt(100)

// FormatAmount formats a ledger amount with fixed money precision.
// Example: 12.3456 returns "12.35", 7 returns "7.00"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}

// FormatRate formats a fractional rate with fixed rate precision.
// Example: 0.0673 returns "0.0673", 0.04 returns "0.0400"
func FormatRate(rate decimal.Decimal) string {
	return rate.StringFixed(RatePrecision)
}

// FormatPercent formats a fractional rate as a percentage with two decimals.
// Example: 0.0673 returns "6.73%"
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}
