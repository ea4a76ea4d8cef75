package statement

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// SecurityType classifies a position. Unknown is a legitimate resting state:
// a type may be inferred late or never.
type SecurityType string

const (
	Bond              SecurityType = "Bond"
	Equity            SecurityType = "Equity"
	Fund              SecurityType = "Fund"
	StructuredProduct SecurityType = "StructuredProduct"
	Cash              SecurityType = "Cash"
	Unknown           SecurityType = "Unknown"
)

// typeKeywords maps lowercase description fragments to a security type.
// Order matters: more specific vocabularies are probed first, so a
// "structured bond note" classifies as a structured product, not a bond.
var typeKeywords = []struct {
	kind  SecurityType
	words []string
}{
	{StructuredProduct, []string{"structured", "certificate", "barrier", "autocall", "reverse convertible", "note"}},
	{Fund, []string{"fund", "etf", "sicav", "ucits"}},
	{Bond, []string{"bond", "obligation", "treasury", "debenture", "fixed income"}},
	{Equity, []string{"equity", "share", "stock", "aktie", "action"}},
	{Cash, []string{"cash", "liquidity", "current account", "deposit"}},
}

// InferSecurityType guesses a type from free-text vocabulary, falling back to
// Unknown rather than forcing a wrong label.
func InferSecurityType(description string) SecurityType {
	lower := strings.ToLower(description)
	for _, tk := range typeKeywords {
		for _, w := range tk.words {
			if strings.Contains(lower, w) {
				return tk.kind
			}
		}
	}
	return Unknown
}

// Security is a reconciled position in the statement.
type Security struct {
	ISIN          string
	Description   string
	Type          SecurityType
	Valuation     *Amount
	IsTotal       bool
	IsPlaceholder bool
	Valid         bool   // identifier passed CheckISIN (vacuously true without one)
	Reason        string // why the identifier is invalid
	Sources       []Provenance
}

// Key is the identity under which candidates for the same position collapse:
// the ISIN when present, otherwise a fingerprint of description and value.
func (s Security) Key() string {
	if s.ISIN != "" {
		return s.ISIN
	}
	return fingerprint(s.Description, s.Valuation)
}

func fingerprint(description string, valuation *Amount) string {
	h := fnv.New64a()
	h.Write([]byte(normalizeLabel(description)))
	h.Write([]byte{0})
	if valuation != nil {
		h.Write([]byte(valuation.Decimal().String()))
	}
	return fmt.Sprintf("fp:%016x", h.Sum64())
}

// normalizeLabel trims surrounding whitespace and punctuation and lowercases,
// so "  Bonds: " and "bonds" group together.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.Trim(label, ".:;,-–*•")
	label = strings.TrimSpace(label)
	return strings.ToLower(label)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
