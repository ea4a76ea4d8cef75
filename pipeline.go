package statement

import (
	"log"

	"github.com/mgirod/statement/date"
)

// Process runs the whole reconciliation pipeline on one document. Every
// stage consumes the previous stage's output and produces a fresh structure;
// the stages run in a fixed, sequential order and the raw document is never
// mutated. Process always returns a model: unreliable input degrades to
// validation issues and extraction errors, not to failures.
func Process(doc RawDocument, opts Options) *Model {
	candidates := Collect(doc, opts)
	log.Printf("collected candidates securities=%d allocations=%d values=%d errors=%d",
		len(candidates.Securities), len(candidates.Allocations), len(candidates.Values), len(candidates.Errors))

	m := &Model{
		Currency: candidates.Currency,
		Errors:   candidates.Errors,
	}
	if m.Currency == "" {
		m.Currency = opts.Currency
	}

	m.PortfolioValue = ReconcilePortfolioValue(candidates.Values, opts)
	if m.PortfolioValue != nil {
		m.PortfolioValue.Value = m.PortfolioValue.Value.WithCurrency(m.Currency)
		log.Printf("portfolio value %s confidence=%.3f from %d candidate(s)",
			m.PortfolioValue.Value, m.PortfolioValue.Confidence, len(m.PortfolioValue.Sources))
	}

	m.Securities = DedupeSecurities(candidates.Securities, opts)

	strategy := IndentStrategy{Shallow: opts.IndentShallow, Deep: opts.IndentDeep}
	allocations := DedupeAllocations(candidates.Allocations, opts)
	allocations = BuildHierarchy(allocations, strategy)
	if sum, ok := PercentSum(allocations); ok {
		m.RawPercentSum = &sum
	}
	m.Allocations = NormalizePercentages(allocations)

	m.Structured = ReconcileStructured(m.Securities, m.Allocations, doc.Texts, opts)
	if m.Structured.PlaceholderInserted {
		log.Printf("structured products: placeholder of %s inserted to close declared total %s",
			m.Structured.Gap, m.Structured.DeclaredTotal)
	}

	for _, t := range doc.Texts {
		if d, ok := date.Scan(t.Text); ok {
			m.StatementDate = d
			break
		}
	}

	m.Graph = BuildGraph(m)
	m.Validation = Validate(m, opts)
	return m
}
