// Package money converts between user-facing decimal amounts and the minor
// currency units (cents) every other package works in.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrEmptyAmount = errors.New("empty amount")

var hundred = decimal.NewFromInt(100)

var symbolStripper = strings.NewReplacer(" ", "", "\u00a0", "", "_", "", "$", "", "€", "")

// FromMajor converts whole currency units into cents.
func FromMajor(units int64) int64 {
	return units * 100
}

// FromDecimal rounds a decimal amount in major units to the nearest cent.
func FromDecimal(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// ToDecimal returns the major-unit decimal value of an amount in cents.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Parse reads an amount typed by a person or found in a spreadsheet into cents.
// The right-most separator is taken as the decimal mark, so both
// "1,234,567.89" and "1.234.567,89" yield 123456789, and a separator that
// repeats is grouping.
func Parse(s string) (int64, error) {
	clean := symbolStripper.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, ErrEmptyAmount
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return FromDecimal(d), nil
}

// normalizeSeparators rewrites s so '.' is the only separator left and marks
// the decimals. A separator that repeats is grouping, and so is a lone one
// that splits off exactly three digits after a leading group ("125,000").
func normalizeSeparators(s string) string {
	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}

		return strings.ReplaceAll(s, ",", "")
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	case commas == 1:
		if isThousandsGroup(s, ",") {
			return strings.ReplaceAll(s, ",", "")
		}

		return strings.ReplaceAll(s, ",", ".")
	case dots == 1:
		if isThousandsGroup(s, ".") {
			return strings.ReplaceAll(s, ".", "")
		}
	}

	return s
}

// isThousandsGroup reports whether the single sep in s splits a 1-3 digit
// head without a leading zero from exactly three trailing digits.
func isThousandsGroup(s, sep string) bool {
	head, tail, _ := strings.Cut(strings.TrimPrefix(s, "-"), sep)
	if len(tail) != 3 || len(head) == 0 || len(head) > 3 || head[0] == '0' {
		return false
	}

	return allDigits(head) && allDigits(tail)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Format renders cents as a plain two-decimal string, e.g. 123456 -> "1234.56".
func Format(cents int64) string {
	return ToDecimal(cents).StringFixed(2)
}

// FormatGrouped renders cents with thousands separators, e.g. 123456789 -> "1,234,567.89".
func FormatGrouped(cents int64) string {
	plain := Format(cents)

	sign := ""
	if strings.HasPrefix(plain, "-") {
		sign = "-"
		plain = plain[1:]
	}

	intPart, frac, _ := strings.Cut(plain, ".")

	var sb strings.Builder

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(r)
	}

	return sign + sb.String() + "." + frac
}
