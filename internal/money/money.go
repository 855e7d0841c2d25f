// Package money holds the parse/format boundary for monetary fields. Form
// drafts arrive with numbers as strings, empty strings or missing values;
// everything past this boundary is a decimal.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse coerces a raw form field to a decimal amount. Empty, whitespace-only
// and non-numeric input all parse to zero so a half-filled draft never blocks
// a recompute.
func Parse(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders an amount with exactly two decimal places, rounding half up.
func Format(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// Sum adds a list of raw form fields.
func Sum(raw ...string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range raw {
		total = total.Add(Parse(r))
	}
	return total
}
