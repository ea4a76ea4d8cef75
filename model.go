package statement

import "github.com/mgirod/statement/date"

// PortfolioValue is the single canonical total for the document.
// Confidence is the share of candidates that agreed on the chosen value.
type PortfolioValue struct {
	Value      Amount
	Confidence float64
	Sources    []Provenance
}

// Allocation is one reconciled asset-allocation row. Parent and Children are
// indices into the owning slice; Parent is -1 for roots.
type Allocation struct {
	AssetClass string
	RawLabel   string // original label, indentation preserved
	Value      *Amount
	Percentage *Percent
	Level      int
	Path       []string
	IsTotal    bool
	Parent     int
	Children   []int
	Sources    []Provenance
}

// StructuredSummary is the reconciled structured-products subset.
type StructuredSummary struct {
	DeclaredTotal       *Amount
	Items               []Security
	Gap                 *Amount
	PlaceholderInserted bool
}

// ItemsSum adds up the itemized structured-product valuations.
func (s StructuredSummary) ItemsSum() Amount {
	var amounts []Amount
	for _, item := range s.Items {
		if item.Valuation != nil {
			amounts = append(amounts, *item.Valuation)
		}
	}
	return SumAmounts(amounts)
}

// Model is the canonical, internally consistent financial model produced for
// one document. Later pipeline stages never mutate what earlier stages built;
// each field is replaced wholesale by the stage that owns it.
type Model struct {
	PortfolioValue *PortfolioValue
	Securities     []Security
	Allocations    []Allocation
	// RawPercentSum is the top-level percentage sum as extracted, recorded
	// before any rescaling so validation judges the document, not the
	// repaired display.
	RawPercentSum *Percent
	Structured    StructuredSummary
	StatementDate  date.Date
	Currency       string
	Graph          *Graph
	Validation     Report
	Errors         []ExtractionError
}

// SecuritiesSum adds up non-total, non-placeholder security valuations.
func (m *Model) SecuritiesSum() Amount {
	var amounts []Amount
	for _, s := range m.Securities {
		if s.IsTotal || s.IsPlaceholder || s.Valuation == nil {
			continue
		}
		amounts = append(amounts, *s.Valuation)
	}
	return SumAmounts(amounts)
}

// AllocationsSum adds up the values of top-level, non-total allocation rows.
func (m *Model) AllocationsSum() Amount {
	var amounts []Amount
	for _, a := range m.Allocations {
		if a.IsTotal || a.Level != 0 || a.Value == nil {
			continue
		}
		amounts = append(amounts, *a.Value)
	}
	return SumAmounts(amounts)
}
