package statement

import "fmt"

// ValidationResult is the verdict for one section of the model. Advisory
// issues are reported like any other but do not flip Valid: a reviewer must
// see why a number looks off without a harmless gap failing the document.
type ValidationResult struct {
	Section  string
	Valid    bool
	Issues   []string
	blocking int
}

func (r *ValidationResult) add(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
	r.blocking++
}

func (r *ValidationResult) advise(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) finish() {
	r.Valid = r.blocking == 0
}

// Report is the full validation report: three independent section verdicts
// plus the cross-section overall verdict.
type Report struct {
	PortfolioValue  ValidationResult
	Securities      ValidationResult
	AssetAllocation ValidationResult
	Overall         ValidationResult
}

// Validate runs every section validator independently, then cross-checks the
// sections against each other. Validation never halts the pipeline and no
// check ever mutates the model: every inconsistency becomes an issue string
// and processing continues.
func Validate(m *Model, opts Options) Report {
	report := Report{
		PortfolioValue:  validatePortfolioValue(m),
		Securities:      validateSecurities(m),
		AssetAllocation: validateAllocations(m, opts),
	}
	report.Overall = validateOverall(m, &report, opts)
	return report
}

func validatePortfolioValue(m *Model) (r ValidationResult) {
	r.Section = "portfolio_value"
	defer r.finish()

	switch {
	case m.PortfolioValue == nil:
		r.add("portfolio value not found")
	case !m.PortfolioValue.Value.IsPositive():
		r.add("portfolio value %s is not positive", m.PortfolioValue.Value)
	case m.PortfolioValue.Confidence < 0.5:
		r.advise("portfolio value confidence is low (%.2f): extraction backends disagree", m.PortfolioValue.Confidence)
	}
	return r
}

func validateSecurities(m *Model) (r ValidationResult) {
	r.Section = "securities"
	defer r.finish()

	positions := 0
	for _, sec := range m.Securities {
		if sec.IsTotal {
			continue
		}
		positions++
		name := sec.ISIN
		if name == "" {
			name = sec.Description
		}
		if !sec.Valid {
			r.add("security %q has an invalid ISIN: %s", name, sec.Reason)
		}
		if sec.Valuation == nil {
			r.advise("security %q has no valuation", name)
		}
		if sec.Type == Unknown {
			r.advise("security %q has no security type", name)
		}
	}
	if positions == 0 {
		r.add("no securities found")
	}
	return r
}

func validateAllocations(m *Model, opts Options) (r ValidationResult) {
	r.Section = "asset_allocation"
	defer r.finish()

	if len(m.Allocations) == 0 {
		r.add("asset allocation not found")
		return r
	}

	var sum float64
	counted := 0
	for _, a := range m.Allocations {
		if a.Value != nil && a.Value.IsNegative() {
			r.add("asset class %q has a negative value %s", a.AssetClass, a.Value)
		}
		if a.IsTotal || a.Level != 0 || a.Percentage == nil {
			continue
		}
		sum += float64(*a.Percentage)
		counted++
	}
	// the rows may already be rescaled to 100; the extracted sum, when
	// recorded, is the one that tells whether the document added up
	if m.RawPercentSum != nil {
		sum, counted = float64(*m.RawPercentSum), 1
	}
	if counted > 0 {
		if diff := sum - 100; diff > opts.PercentTolerance || diff < -opts.PercentTolerance {
			r.add("allocation percentages sum to %.2f%%, expected 100%% within %.0f points", sum, opts.PercentTolerance)
		}
	}
	return r
}

func validateOverall(m *Model, report *Report, opts Options) (r ValidationResult) {
	r.Section = "overall"
	defer r.finish()

	// a failed section fails the document as a whole
	for _, section := range []*ValidationResult{&report.PortfolioValue, &report.Securities, &report.AssetAllocation} {
		if !section.Valid {
			r.add("%s: %d issue(s)", section.Section, section.blocking)
		}
	}

	// without a portfolio value there is nothing to cross-check against;
	// this is the single short-circuit in the validator
	if m.PortfolioValue == nil {
		r.add("portfolio value missing: cross-section checks skipped")
		return r
	}
	total := m.PortfolioValue.Value

	if sum := m.SecuritiesSum(); !sum.IsZero() {
		if gap := sum.RelativeGap(total); gap > opts.SecuritiesTolerance {
			r.add("securities sum %s deviates %.1f%% from portfolio value %s", sum, gap*100, total)
		}
	}
	if sum := m.AllocationsSum(); !sum.IsZero() {
		if gap := sum.RelativeGap(total); gap > opts.AllocationTolerance {
			r.add("allocation sum %s deviates %.1f%% from portfolio value %s", sum, gap*100, total)
		}
	}
	if m.Structured.DeclaredTotal != nil && m.Structured.PlaceholderInserted {
		r.advise("structured products reconciled with a placeholder of %s", m.Structured.Gap)
	}
	return r
}
