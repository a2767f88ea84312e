package invoice

import "github.com/shopspring/decimal"

// Currency amounts are rounded half-up (half away from zero) to two
// decimal places. The same convention applies to every amount on the
// invoice so totals are reproducible.
const currencyPlaces = 2

// RoundCents rounds a monetary amount to currency precision
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(currencyPlaces)
}

// FormatCents renders a monetary amount with exactly two decimal places
func FormatCents(amount decimal.Decimal) string {
	return amount.StringFixed(currencyPlaces)
}
