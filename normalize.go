package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Statements in the wild mix two thousands-separator conventions, often in
// the same document: 1,234.56 and 1'234.56. Both separators are stripped
// before parsing; the dot is always the decimal mark.

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// cleanNumeric strips thousands separators and any character that cannot be
// part of a number. It returns "" when nothing numeric remains.
func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ",", "")
	s = nonNumericRe.ReplaceAllString(s, "")
	// a lone sign or dot is not a number
	if trimmed := strings.Trim(s, ".-"); trimmed == "" {
		return ""
	}
	return s
}

// ParseAmount parses a heterogeneous numeric cell into an Amount.
// It never fails loudly: unparseable input returns ok=false.
func ParseAmount(s string) (Amount, bool) {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return Amount{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{}, false
	}
	return Amount{value: d}, true
}

// ParsePercent parses a percentage cell, stripping a trailing percent sign.
func ParsePercent(s string) (Percent, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	a, ok := ParseAmount(s)
	if !ok {
		return 0, false
	}
	return Percent(a.Float64()), true
}

// looksNumeric reports whether the cell parses as a number at all.
func looksNumeric(s string) bool {
	_, ok := ParseAmount(s)
	return ok
}

// looksPercent reports whether the cell is a percentage (a number with a
// trailing percent sign).
func looksPercent(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return false
	}
	_, ok := ParsePercent(s)
	return ok
}
