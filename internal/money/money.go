// Package money parses and formats deal amounts as exact decimals.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount string is empty or not a number
var ErrInvalidAmount = errors.New("invalid amount")

// ignored holds the characters Parse drops before reading the number
const ignored = "$€£¥, _\t"

// DefaultSymbol is the currency symbol used when none is configured
const DefaultSymbol = "$"

// Parse reads an amount such as "8500", "8,500" or "$8,500.00".
// Currency symbols, grouping commas and surrounding spaces are ignored.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(ignored, r) {
			return -1
		}
		return r
	}, s)

	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders an amount with a currency symbol and thousands separators.
// Whole amounts have no cents ("$8,500"); anything else gets two digits ("$17.75").
func Format(d decimal.Decimal, symbol string) string {
	neg := d.IsNegative()
	d = d.Abs()

	places := int32(2)
	if d.Equal(d.Truncate(0)) {
		places = 0
	}
	d = d.Round(places)

	var b strings.Builder
	if neg && !d.IsZero() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(humanize.BigComma(d.BigInt()))
	if places > 0 {
		_, frac, _ := strings.Cut(d.StringFixed(places), ".")
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Compact renders large amounts in a short form for narrow columns: "$24k", "$1.2M".
func Compact(d decimal.Decimal, symbol string) string {
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return sign + symbol + trimZero(abs.Div(decimal.NewFromInt(1_000_000)).StringFixed(1)) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return sign + symbol + trimZero(abs.Div(decimal.NewFromInt(1_000)).StringFixed(1)) + "k"
	default:
		return Format(d, symbol)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
