package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Upstream numerics arrive in whatever form the backing store had: JSON
// numbers, plain strings, comma-decimal strings, empty strings or the literal
// "None". The helpers here coerce all of those the same way everywhere.

// ParseNumber converts an upstream value to a float64. Returns false for
// absent, empty or unparseable values. Comma decimal separators are accepted.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseNumberString(n)
	default:
		return parseNumberString(fmt.Sprint(v))
	}
}

// ParseDecimal converts an upstream value to a decimal, coercing anything
// unparseable to zero. Aggregation never skips a row over a malformed number.
func ParseDecimal(v any) decimal.Decimal {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return decimal.Zero
		}
		s = fmt.Sprint(v)
	}
	d, ok := parseDecimalString(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

func normalizeNumberString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" {
		return "", false
	}
	return strings.ReplaceAll(s, ",", "."), true
}

func parseNumberString(s string) (float64, bool) {
	s, ok := normalizeNumberString(s)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDecimalString(s string) (decimal.Decimal, bool) {
	s, ok := normalizeNumberString(s)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
