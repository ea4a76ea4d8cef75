package statement

import (
	"strings"
	"testing"
)

// fullDocument builds a document the way a multi-backend extraction run
// would: one clean securities table, one allocation table, free text with
// the statement header, and an OCR pass that re-reads the structured note
// with a slightly wrong valuation.
func fullDocument() RawDocument {
	return RawDocument{
		Tables: []RawTable{
			{
				Page:    3,
				Method:  "camelot",
				Headers: []string{"ISIN", "Description", "Valuation CHF"},
				Rows: [][]string{
					{"XS2567543397", "Barrier Reverse Convertible on SMI", "2'560'667.00"},
					{"US0378331005", "Apple Inc", "27'406.00"},
				},
			},
			{
				Page:    5,
				Method:  "pdfplumber",
				Headers: []string{"Asset class", "Value", "Weight"},
				Rows: [][]string{
					{"Equities", "27'406.00", "0.14%"},
					{"Structured products", "3'560'667.00", "18.25%"},
					{"Bonds", "15'922'526.00", "81.61%"},
					{"Total assets", "19'510'599.00", "100.00%"},
				},
			},
		},
		Texts: []RawText{
			{
				Method: "pdftext",
				Text: strings.Join([]string{
					"Valuation as of 31.12.2024 in CHF",
					"Total assets 19'510'599.00",
				}, "\n"),
			},
			{
				Method: "tesseract-ocr",
				Text:   "XS2567543397 Barrier Reverse Convertible on SMI 2'560'007.00",
			},
		},
	}
}

func TestProcess(t *testing.T) {
	m := Process(fullDocument(), DefaultOptions())

	if m.Currency != "CHF" {
		t.Errorf("Currency = %q, want CHF", m.Currency)
	}
	if m.StatementDate.String() != "2024-12-31" {
		t.Errorf("StatementDate = %s, want 2024-12-31", m.StatementDate)
	}

	if m.PortfolioValue == nil {
		t.Fatal("no portfolio value reconciled")
	}
	if m.PortfolioValue.Value.Float64() != 19510599 {
		t.Errorf("portfolio value = %v, want 19510599", m.PortfolioValue.Value)
	}
	if m.PortfolioValue.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 (both candidates agree)", m.PortfolioValue.Confidence)
	}

	if len(m.Securities) != 2 {
		t.Fatalf("securities = %d, want 2 (table and OCR observations merged)", len(m.Securities))
	}
	note := m.Securities[0]
	if note.ISIN != "XS2567543397" {
		t.Fatalf("first security = %q", note.ISIN)
	}
	// the table reading wins over the OCR misread
	if note.Valuation == nil || note.Valuation.Float64() != 2560667 {
		t.Errorf("note valuation = %v, want 2560667", note.Valuation)
	}
	if len(note.Sources) != 2 {
		t.Errorf("note sources = %d, want 2", len(note.Sources))
	}
	if !note.Valid {
		t.Errorf("note flagged invalid: %s", note.Reason)
	}

	if len(m.Allocations) != 4 {
		t.Fatalf("allocations = %d, want 4", len(m.Allocations))
	}
	var sum Percent
	for _, a := range m.Allocations {
		if a.IsTotal || a.Level != 0 {
			continue
		}
		if a.Percentage != nil {
			sum += *a.Percentage
		}
	}
	if !sum.Equal(100) {
		t.Errorf("percentage sum = %v, want 100", sum)
	}

	// the itemized structured products fall 1M short of the declared total
	if m.Structured.DeclaredTotal == nil || m.Structured.DeclaredTotal.Float64() != 3560667 {
		t.Fatalf("declared total = %v, want 3560667", m.Structured.DeclaredTotal)
	}
	if !m.Structured.PlaceholderInserted {
		t.Fatal("placeholder not inserted")
	}
	if m.Structured.Gap == nil || m.Structured.Gap.Float64() != 1000000 {
		t.Errorf("gap = %v, want 1000000", m.Structured.Gap)
	}
	if !m.Structured.ItemsSum().Equal(*m.Structured.DeclaredTotal) {
		t.Errorf("items sum %v != declared total %v after repair",
			m.Structured.ItemsSum(), m.Structured.DeclaredTotal)
	}

	if m.Graph == nil {
		t.Fatal("no graph built")
	}
	for _, n := range m.Graph.Nodes {
		if !m.Graph.Reachable(n.ID) {
			t.Errorf("node %q (%s) unreachable from root", n.Label, n.Type)
		}
	}

	if !m.Validation.PortfolioValue.Valid {
		t.Errorf("portfolio value section invalid: %v", m.Validation.PortfolioValue.Issues)
	}
	if !m.Validation.Securities.Valid {
		t.Errorf("securities section invalid: %v", m.Validation.Securities.Issues)
	}
	if !m.Validation.AssetAllocation.Valid {
		t.Errorf("allocation section invalid: %v", m.Validation.AssetAllocation.Issues)
	}
	// only two positions are itemized, so the securities sum cannot tie out
	// to the portfolio total
	if m.Validation.Overall.Valid {
		t.Error("overall section valid, want cross-check failure")
	}
}

func TestProcessPercentDrift(t *testing.T) {
	// half the portfolio is unaccounted for: the display is rescaled to
	// 100 but validation must still report the extracted drift
	doc := RawDocument{
		Tables: []RawTable{{
			Method:  "pdfplumber",
			Headers: []string{"Asset class", "Value", "Weight"},
			Rows: [][]string{
				{"Bonds", "3'000'000.00", "30.00%"},
				{"Equities", "2'000'000.00", "20.00%"},
			},
		}},
	}
	m := Process(doc, DefaultOptions())

	if m.Allocations[0].Percentage == nil || !m.Allocations[0].Percentage.Equal(60) {
		t.Errorf("Bonds percentage = %v, want rescaled 60", m.Allocations[0].Percentage)
	}
	if m.Allocations[1].Percentage == nil || !m.Allocations[1].Percentage.Equal(40) {
		t.Errorf("Equities percentage = %v, want rescaled 40", m.Allocations[1].Percentage)
	}
	if m.RawPercentSum == nil || !m.RawPercentSum.Equal(50) {
		t.Fatalf("RawPercentSum = %v, want 50", m.RawPercentSum)
	}
	if m.Validation.AssetAllocation.Valid {
		t.Fatal("asset_allocation valid despite a 50 point drift")
	}
	found := false
	for _, issue := range m.Validation.AssetAllocation.Issues {
		if strings.Contains(issue, "50.00") {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue reports the extracted sum: %v", m.Validation.AssetAllocation.Issues)
	}
}

func TestProcessDegradedInput(t *testing.T) {
	doc := RawDocument{
		Tables: []RawTable{{
			Method: "camelot",
			Rows:   [][]string{{"garbled", "noise"}, {"more", "noise"}},
		}},
	}
	m := Process(doc, DefaultOptions())
	if m == nil {
		t.Fatal("Process returned nil on degraded input")
	}
	if len(m.Errors) == 0 {
		t.Error("unusable table produced no extraction error")
	}
	if m.PortfolioValue != nil {
		t.Errorf("portfolio value = %+v, want nil", m.PortfolioValue)
	}
	if m.Validation.Overall.Valid {
		t.Error("empty model must not validate")
	}
}

func TestProcessEncodes(t *testing.T) {
	m := Process(fullDocument(), DefaultOptions())
	data, err := EncodeModel(m)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"portfolio_value"`, `"statement_date": "2024-12-31"`, `"placeholder_inserted": true`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded output missing %s", want)
		}
	}
}
