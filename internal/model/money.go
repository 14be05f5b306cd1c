package model

import "github.com/shopspring/decimal"

// MinorPerMajor is the number of minor currency units (kopiykas) in one hryvnia.
const MinorPerMajor = 100

// MajorUnits converts a minor-unit amount to whole major units, rounding half up.
// Payment gateway amounts are always expressed this way.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(MinorPerMajor)).Round(0)
}

// FormatMajor renders a minor-unit amount in major units with two decimals, e.g. "150.00".
func FormatMajor(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(MinorPerMajor)).StringFixed(2)
}
