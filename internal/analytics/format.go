// Package analytics turns fetched entity collections and server KPI payloads
// into display-ready aggregates. Every function is pure and total: empty
// input yields the zero value of each metric.
package analytics

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Grouping is locale-invariant: always comma thousands separators
var printer = message.NewPrinter(language.English)

// Currency formats value as whole dollars, e.g. 1234.5 -> "$1,235".
// Halves round away from zero.
func Currency(value float64) string {
	if !finite(value) {
		value = 0
	}
	whole := decimal.NewFromFloat(value).Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}
	return sign + "$" + printer.Sprint(number.Decimal(whole.IntPart()))
}

// Percent formats a value already on the 0-100 scale with one decimal digit
func Percent(value float64) string {
	if !finite(value) {
		value = 0
	}
	return strconv.FormatFloat(value, 'f', 1, 64) + "%"
}

// WholePercent formats a 0-100 value with no decimal digits
func WholePercent(value float64) string {
	if !finite(value) {
		value = 0
	}
	return strconv.FormatFloat(math.Round(value), 'f', 0, 64) + "%"
}

// Number formats a count or measure with grouping and at most three decimals
func Number(value float64) string {
	if !finite(value) {
		value = 0
	}
	return printer.Sprint(number.Decimal(value, number.MaxFractionDigits(3)))
}

// Ratio returns numerator/denominator on the 0-100 scale, or 0 when the
// denominator is zero
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
