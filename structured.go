package statement

import "regexp"

// structuredRe matches the vocabulary of the structured-products section.
var structuredRe = regexp.MustCompile(`(?i)\bstructured\s+products?\b`)

// structuredItemRe matches descriptions of individual structured notes.
var structuredItemRe = regexp.MustCompile(`(?i)structured|certificate`)

// structuredTextRe captures a declared total stated in free text, as in
// "Structured products total 7'850'257.00".
var structuredTextRe = regexp.MustCompile(`(?i)\bstructured\s+products?\b[^0-9\n]{0,40}([0-9][0-9.,']*)`)

// ReconcileStructured reconciles the declared structured-products total
// against the itemized securities. When the itemized sum falls short of the
// declared total by more than the configured relative tolerance, a synthetic
// placeholder item is inserted so the items sum to the declared total
// exactly. The repair is explicit and flagged, never silent. Without a
// declared total no reconciliation is attempted: absence of a total is not
// an error.
func ReconcileStructured(securities []Security, allocations []Allocation, texts []RawText, opts Options) StructuredSummary {
	summary := StructuredSummary{}

	summary.DeclaredTotal = findDeclaredTotal(securities, allocations, texts, opts)

	for _, sec := range securities {
		if sec.IsTotal {
			continue
		}
		if sec.Type == StructuredProduct || structuredItemRe.MatchString(sec.Description) {
			summary.Items = append(summary.Items, sec)
		}
	}

	if summary.DeclaredTotal == nil {
		return summary
	}

	itemsSum := summary.ItemsSum()
	gap := summary.DeclaredTotal.Sub(itemsSum)
	if g := gap.Abs(); !g.IsZero() {
		v := gap
		summary.Gap = &v
	}

	if itemsSum.RelativeGap(*summary.DeclaredTotal) > opts.StructuredGapTolerance {
		placeholder := gap
		summary.Items = append(summary.Items, Security{
			Description:   "Missing structured products",
			Type:          StructuredProduct,
			Valuation:     &placeholder,
			IsPlaceholder: true,
			Valid:         true,
		})
		summary.PlaceholderInserted = true
	}
	return summary
}

// findDeclaredTotal looks for an explicit structured-products total, in
// decreasing order of reliability: a total row among the securities, the
// structured-products line of the asset allocation, a statement in free text.
func findDeclaredTotal(securities []Security, allocations []Allocation, texts []RawText, opts Options) *Amount {
	for _, sec := range securities {
		if sec.IsTotal && structuredRe.MatchString(sec.Description) && sec.Valuation != nil {
			v := *sec.Valuation
			return &v
		}
	}
	for _, a := range allocations {
		if structuredRe.MatchString(a.AssetClass) && a.Value != nil {
			v := *a.Value
			return &v
		}
	}
	for _, t := range texts {
		for _, m := range structuredTextRe.FindAllStringSubmatch(t.Text, -1) {
			if v, ok := ParseAmount(m[1]); ok && v.Float64() >= opts.MinValuation {
				return &v
			}
		}
	}
	return nil
}
