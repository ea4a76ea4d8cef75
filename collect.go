package statement

import (
	"errors"
	"regexp"
	"strings"
)

// ColumnRole identifies what a table column contains.
type ColumnRole int

const (
	RoleNone ColumnRole = iota
	RoleISIN
	RoleDescription
	RoleValue
	RolePercent
	RoleAssetClass
)

func (r ColumnRole) String() string {
	switch r {
	case RoleISIN:
		return "isin"
	case RoleDescription:
		return "description"
	case RoleValue:
		return "value"
	case RolePercent:
		return "percent"
	case RoleAssetClass:
		return "asset_class"
	}
	return "none"
}

// headerKeywords maps a role to the header vocabulary that names it.
var headerKeywords = []struct {
	role  ColumnRole
	words []string
}{
	{RoleISIN, []string{"isin"}},
	{RolePercent, []string{"percent", "weight", "%", "pct"}},
	{RoleValue, []string{"valuation", "countervalue", "market value", "value", "amount", "balance"}},
	{RoleAssetClass, []string{"asset class", "asset", "class", "allocation", "category"}},
	{RoleDescription, []string{"description", "security", "name", "instrument", "designation"}},
}

// columnRule is one detection rule. Rules are composed in a prioritized list
// with first-match-wins semantics: header naming always beats content shape.
type columnRule struct {
	name  string
	apply func(header string, cells []string) (ColumnRole, bool)
}

var columnRules = []columnRule{
	{"header-keyword", func(header string, _ []string) (ColumnRole, bool) {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			return RoleNone, false
		}
		for _, hk := range headerKeywords {
			for _, w := range hk.words {
				if strings.Contains(h, w) {
					return hk.role, true
				}
			}
		}
		return RoleNone, false
	}},
	{"content-isin", func(_ string, cells []string) (ColumnRole, bool) {
		for _, c := range cells {
			if isinRegex.MatchString(strings.TrimSpace(c)) {
				return RoleISIN, true
			}
		}
		return RoleNone, false
	}},
	{"content-percent", func(_ string, cells []string) (ColumnRole, bool) {
		for _, c := range cells {
			if looksPercent(c) {
				return RolePercent, true
			}
		}
		return RoleNone, false
	}},
	{"content-numeric", func(_ string, cells []string) (ColumnRole, bool) {
		for _, c := range cells {
			if strings.TrimSpace(c) != "" && looksNumeric(c) {
				return RoleValue, true
			}
		}
		return RoleNone, false
	}},
	{"content-text", func(_ string, cells []string) (ColumnRole, bool) {
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				return RoleDescription, true
			}
		}
		return RoleNone, false
	}},
}

// detectColumns assigns a role to every column of the table.
func detectColumns(t RawTable) []ColumnRole {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if len(t.Headers) > width {
		width = len(t.Headers)
	}

	roles := make([]ColumnRole, width)
	for col := 0; col < width; col++ {
		header := ""
		if col < len(t.Headers) {
			header = t.Headers[col]
		}
		var cells []string
		for _, row := range t.Rows {
			if col < len(row) {
				cells = append(cells, row[col])
			}
		}
		for _, rule := range columnRules {
			if role, ok := rule.apply(header, cells); ok {
				roles[col] = role
				break
			}
		}
	}
	return roles
}

// totalRe marks rows that are section totals rather than positions.
var totalRe = regexp.MustCompile(`(?i)\b(?:grand\s+total|sub-?total|total|sum)\b`)

// portfolioTotalRe marks the rows and text fragments that state the whole
// portfolio's value.
var portfolioTotalRe = regexp.MustCompile(`(?i)\b(?:total\s+assets|portfolio\s+(?:value|total)|total\s+portfolio)\b`)

// portfolioTextRe additionally captures the number following the label in
// free text.
var portfolioTextRe = regexp.MustCompile(`(?i)\b(?:total\s+assets|portfolio\s+(?:value|total)|total\s+portfolio)\b\s*:?\s*([0-9][0-9.,' ]*)`)

// currencyRe spots the reporting currency.
var currencyRe = regexp.MustCompile(`\b(CHF|EUR|USD|GBP|JPY|CAD|AUD|SEK|NOK|DKK|SGD|HKD)\b`)

// Collect turns the raw output of every extraction backend into typed,
// provenance-tagged candidates. It never fails: fragments that cannot be
// used become ExtractionError values in the result.
func Collect(doc RawDocument, opts Options) Candidates {
	var out Candidates
	for i, table := range doc.Tables {
		collectTable(table, i, opts, &out)
	}
	for _, text := range doc.Texts {
		collectText(text, opts, &out)
	}
	return out
}

func collectTable(t RawTable, index int, opts Options, out *Candidates) {
	prov := Provenance{
		Source: sourceKind(t.Method, SourceTable),
		Method: t.Method,
		Page:   t.Page,
		Table:  index,
	}
	if len(t.Rows) == 0 {
		return // an empty grid is a backend that found nothing, not an error
	}

	roles := detectColumns(t)
	isinCol := findRole(roles, RoleISIN)
	classCol := findRole(roles, RoleAssetClass)
	percentCol := findRole(roles, RolePercent)
	valueCol := pickValueColumn(t, roles)
	descCol := findRole(roles, RoleDescription)

	switch {
	case isinCol >= 0:
		collectSecurityRows(t, roles, prov, out)
	case classCol >= 0 || (percentCol >= 0 && descCol >= 0):
		collectAllocationRows(t, roles, prov, out)
	case descCol >= 0 && valueCol >= 0:
		// no identifier and no percentage: still worth reading as positions
		collectSecurityRows(t, roles, prov, out)
	default:
		out.Errors = append(out.Errors, ExtractionError{
			Method: t.Method,
			Stage:  "table",
			Err:    errors.New("no usable columns detected"),
		})
	}
}

func collectSecurityRows(t RawTable, roles []ColumnRole, prov Provenance, out *Candidates) {
	isinCol := findRole(roles, RoleISIN)
	descCol := findRole(roles, RoleDescription)
	valueCol := pickValueColumn(t, roles)

	for _, row := range t.Rows {
		isin := strings.TrimSpace(cellAt(row, isinCol))
		if !isinRegex.MatchString(isin) {
			isin = "" // header leakage and stray cells are common
		}
		description := strings.TrimSpace(cellAt(row, descCol))
		if description == "" && isin == "" {
			continue
		}

		var valuation *Amount
		if a, ok := ParseAmount(cellAt(row, valueCol)); ok {
			valuation = &a
		}

		isTotal := totalRe.MatchString(description)
		if portfolioTotalRe.MatchString(description) && valuation != nil {
			out.Values = append(out.Values, ValueCandidate{Value: *valuation, Confidence: sourceConfidence(prov.Source), Provenance: prov})
		}

		out.Securities = append(out.Securities, SecurityCandidate{
			ISIN:        isin,
			Description: description,
			Type:        InferSecurityType(description),
			Valuation:   valuation,
			IsTotal:     isTotal,
			Provenance:  prov,
		})
	}
}

func collectAllocationRows(t RawTable, roles []ColumnRole, prov Provenance, out *Candidates) {
	labelCol := findRole(roles, RoleAssetClass)
	if labelCol < 0 {
		labelCol = findRole(roles, RoleDescription)
	}
	valueCol := pickValueColumn(t, roles)
	percentCol := findRole(roles, RolePercent)

	for _, row := range t.Rows {
		raw := cellAt(row, labelCol)
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}

		var value *Amount
		if a, ok := ParseAmount(cellAt(row, valueCol)); ok {
			value = &a
		}
		var percentage *Percent
		if p, ok := ParsePercent(cellAt(row, percentCol)); ok {
			percentage = &p
		}
		if value == nil && percentage == nil {
			continue
		}

		if portfolioTotalRe.MatchString(label) && value != nil {
			out.Values = append(out.Values, ValueCandidate{Value: *value, Confidence: sourceConfidence(prov.Source), Provenance: prov})
		}

		out.Allocations = append(out.Allocations, AllocationCandidate{
			Label:      label,
			RawLabel:   raw,
			Value:      value,
			Percentage: percentage,
			Provenance: prov,
		})
	}
}

// textWindow is how far around an ISIN match the collector looks for the
// position's description and valuation.
const textWindow = 200

var (
	numberRe        = regexp.MustCompile(`[0-9][0-9.,']*`)
	numberPercentRe = regexp.MustCompile(`[0-9][0-9.,'%]*`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

// lineBounds returns the start and end of the line containing [from, to).
func lineBounds(text string, from, to int) (int, int) {
	start := strings.LastIndexByte(text[:from], '\n') + 1
	end := strings.IndexByte(text[to:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += to
	}
	return start, end
}

func collectText(t RawText, opts Options, out *Candidates) {
	if strings.TrimSpace(t.Text) == "" {
		return
	}
	prov := Provenance{Source: sourceKind(t.Method, SourceText), Method: t.Method}

	if out.Currency == "" {
		if m := currencyRe.FindString(t.Text); m != "" {
			out.Currency = m
		}
	}

	for _, match := range portfolioTextRe.FindAllStringSubmatch(t.Text, -1) {
		if a, ok := ParseAmount(match[1]); ok && a.Float64() >= opts.MinValuation {
			out.Values = append(out.Values, ValueCandidate{Value: a, Confidence: sourceConfidence(prov.Source), Provenance: prov})
		}
	}

	for _, loc := range FindISINs(t.Text) {
		isin := t.Text[loc[0]:loc[1]]
		start := max(0, loc[0]-textWindow)
		end := min(len(t.Text), loc[1]+textWindow)
		window := t.Text[start:end]

		description := describeFromWindow(t.Text, loc)
		lineStart, lineEnd := lineBounds(t.Text, loc[0], loc[1])
		valuation := pickValuation(t.Text[lineStart:lineEnd], opts)
		if valuation == nil {
			valuation = pickValuation(window, opts)
		}

		kind := InferSecurityType(description)
		if kind == Unknown {
			kind = InferSecurityType(window)
		}

		out.Securities = append(out.Securities, SecurityCandidate{
			ISIN:        isin,
			Description: description,
			Type:        kind,
			Valuation:   valuation,
			Provenance:  prov,
		})
	}
}

// describeFromWindow extracts a description for an ISIN found in text: the
// ISIN's own line stripped of the identifier and of numbers, falling back to
// the previous line when nothing readable remains.
func describeFromWindow(text string, loc []int) string {
	lineStart, lineEnd := lineBounds(text, loc[0], loc[1])

	strip := func(s string) string {
		s = isinScanRe.ReplaceAllString(s, "")
		s = numberPercentRe.ReplaceAllString(s, "")
		s = spacesRe.ReplaceAllString(s, " ")
		return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ".:;,-"))
	}

	if d := strip(text[lineStart:lineEnd]); d != "" {
		return d
	}
	// previous line
	if lineStart >= 2 {
		prevStart := strings.LastIndexByte(text[:lineStart-1], '\n') + 1
		return strip(text[prevStart : lineStart-1])
	}
	return ""
}

// pickValuation picks the most plausible market value in a fragment of text:
// the largest parseable number at or above the minimum. Small numbers are
// quantities or unit prices, not market values. The caller tries the ISIN's
// own line before widening to the surrounding window.
func pickValuation(window string, opts Options) *Amount {
	var best *Amount
	for _, m := range numberRe.FindAllString(window, -1) {
		a, ok := ParseAmount(m)
		if !ok || a.Float64() < opts.MinValuation {
			continue
		}
		if best == nil || a.GreaterThan(*best) {
			v := a
			best = &v
		}
	}
	return best
}

func findRole(roles []ColumnRole, want ColumnRole) int {
	for i, r := range roles {
		if r == want {
			return i
		}
	}
	return -1
}

// pickValueColumn chooses the valuation column. Statements often carry
// several numeric columns (quantity, unit price, market value); the market
// value is reliably the one with the largest magnitude.
func pickValueColumn(t RawTable, roles []ColumnRole) int {
	best, bestMag := -1, -1.0
	for col, role := range roles {
		if role != RoleValue {
			continue
		}
		mag := 0.0
		for _, row := range t.Rows {
			if a, ok := ParseAmount(cellAt(row, col)); ok {
				if v := a.Abs().Float64(); v > mag {
					mag = v
				}
			}
		}
		if mag > bestMag {
			best, bestMag = col, mag
		}
	}
	return best
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
