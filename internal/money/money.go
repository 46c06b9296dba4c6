// Package money works with integer amounts in currency minor units.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// MaxDecimals is the upper bound on currency precision.
const MaxDecimals = 8

// ClampDecimals forces a currency precision into [0, MaxDecimals].
func ClampDecimals(decimals int) int {
	if decimals < 0 {
		return 0
	}
	if decimals > MaxDecimals {
		return MaxDecimals
	}
	return decimals
}

// Rescale rewrites a minor-unit amount after a currency precision
// change. A positive offset multiplies by 10^offset exactly; a negative
// offset divides and rounds half up. Zero stays zero, so absent tax
// amounts survive a rescale untouched.
func Rescale(amount int64, offset int) int64 {
	if amount == 0 || offset == 0 {
		return amount
	}
	return decimal.NewFromInt(amount).Shift(int32(offset)).Round(0).IntPart()
}

// ParseMinor parses a decimal string into minor units at the given
// precision. "12.34" with decimals=2 becomes 1234.
func ParseMinor(input string, decimals int) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if -d.Exponent() > int32(decimals) {
		return 0, ErrTooManyDecimals
	}
	return d.Shift(int32(decimals)).IntPart(), nil
}

// FormatMinor renders a minor-unit amount as a decimal string at the
// given precision. 1234 with decimals=2 becomes "12.34".
func FormatMinor(value int64, decimals int) string {
	return decimal.NewFromInt(value).Shift(int32(-decimals)).StringFixed(int32(decimals))
}
