// Package renderer turns a reconciled statement model into human readable
// markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/mgirod/statement"
)

// ReportMarkdown renders the full reconciliation report.
func ReportMarkdown(m *statement.Model) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Portfolio Statement Reconciliation\n\n")
	if !m.StatementDate.IsZero() {
		fmt.Fprintf(&b, "Statement date: %s\n\n", m.StatementDate)
	}

	fmt.Fprint(&b, "## Portfolio Value\n\n")
	if m.PortfolioValue != nil {
		fmt.Fprintf(&b, "**%s** (confidence %.0f%%, %d source(s))\n\n",
			m.PortfolioValue.Value,
			m.PortfolioValue.Confidence*100,
			len(m.PortfolioValue.Sources),
		)
	} else {
		fmt.Fprint(&b, "No portfolio value could be reconciled.\n\n")
	}

	fmt.Fprint(&b, "## Securities\n\n")
	fmt.Fprintln(&b, "| ISIN | Description | Type | Valuation | Status |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|")
	for _, s := range m.Securities {
		if s.IsTotal {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.ISIN, s.Description, s.Type, valuation(s.Valuation), status(s))
	}
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "## Asset Allocation\n\n")
	fmt.Fprintln(&b, "| Asset class | Value | Weight |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, a := range m.Allocations {
		label := strings.Repeat("&nbsp;&nbsp;", a.Level) + a.AssetClass
		if a.IsTotal {
			label = "**" + a.AssetClass + "**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", label, valuation(a.Value), weight(a.Percentage))
	}
	fmt.Fprintln(&b)

	if len(m.Structured.Items) > 0 || m.Structured.DeclaredTotal != nil {
		fmt.Fprint(&b, "## Structured Products\n\n")
		fmt.Fprintln(&b, "| Description | Valuation |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, item := range m.Structured.Items {
			desc := item.Description
			if item.IsPlaceholder {
				desc = "*" + desc + "*"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", desc, valuation(item.Valuation))
		}
		if m.Structured.DeclaredTotal != nil {
			fmt.Fprintf(&b, "| **Declared total** | **%s** |\n", m.Structured.DeclaredTotal)
		}
		fmt.Fprintln(&b)
		if m.Structured.PlaceholderInserted {
			fmt.Fprintf(&b, "A placeholder of %s was inserted to close the gap to the declared total.\n\n", m.Structured.Gap)
		}
	}

	fmt.Fprint(&b, "## Validation\n\n")
	for _, section := range []statement.ValidationResult{
		m.Validation.PortfolioValue,
		m.Validation.Securities,
		m.Validation.AssetAllocation,
		m.Validation.Overall,
	} {
		fmt.Fprintf(&b, "- %s: %s\n", section.Section, verdict(section.Valid))
		for _, issue := range section.Issues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}

	if len(m.Errors) > 0 {
		fmt.Fprint(&b, "\n## Extraction Errors\n\n")
		for _, e := range m.Errors {
			fmt.Fprintf(&b, "- %s\n", e.Error())
		}
	}

	return b.String()
}

func valuation(a *statement.Amount) string {
	if a == nil {
		return "-"
	}
	return a.String()
}

func weight(p *statement.Percent) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

func status(s statement.Security) string {
	switch {
	case s.IsPlaceholder:
		return "placeholder"
	case !s.Valid:
		return s.Reason
	default:
		return "ok"
	}
}

func verdict(valid bool) string {
	if valid {
		return "PASS"
	}
	return "FAIL"
}
