package pricing

import "github.com/shopspring/decimal"

// FormatUSD renders an amount for display with exactly two decimals.
// Rounding rule: half away from zero, so 19.485 formats as $19.49.
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// ToCents rounds an amount to whole cents for persistence, using the same
// half-away-from-zero rule as FormatUSD.
func ToCents(amount decimal.Decimal) int {
	return int(amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
