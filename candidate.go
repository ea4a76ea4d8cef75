package statement

import "fmt"

// SourceKind classifies where a candidate observation came from. Tables are
// structurally more reliable than free text, which in turn beats OCR; the
// default precedence in Options encodes exactly that.
type SourceKind string

const (
	SourceTable SourceKind = "table"
	SourceText  SourceKind = "text"
	SourceOCR   SourceKind = "ocr"
)

// Provenance records where a single candidate observation originated, so a
// reviewer can always trace a reconciled number back to its raw fragments.
type Provenance struct {
	Source SourceKind `json:"source"`
	Method string     `json:"extraction_method,omitempty"`
	Page   int        `json:"page,omitempty"`
	Table  int        `json:"table,omitempty"`
}

func (p Provenance) String() string {
	if p.Page > 0 {
		return fmt.Sprintf("%s/%s p.%d", p.Source, p.Method, p.Page)
	}
	return fmt.Sprintf("%s/%s", p.Source, p.Method)
}

// RawTable is a tabular cell grid produced by one extraction backend. Headers
// may be empty or wrong; rows are in document order.
type RawTable struct {
	Page    int        `json:"page"`
	Method  string     `json:"extraction_method"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// RawText is a blob of extracted text tagged with its producing backend.
type RawText struct {
	Method string `json:"extraction_method"`
	Text   string `json:"text"`
}

// RawDocument is everything the extraction backends produced for one
// statement. Joining backends is order independent: candidates carry their
// own provenance and the pipeline never depends on backend order.
type RawDocument struct {
	Tables []RawTable `json:"tables"`
	Texts  []RawText  `json:"texts"`
}

// sourceKind derives the candidate source class from the producing backend
// name: anything OCR-flavoured counts as ocr, everything else keeps the
// structural class of its container.
func sourceKind(method string, structural SourceKind) SourceKind {
	if containsFold(method, "ocr") || containsFold(method, "tesseract") {
		return SourceOCR
	}
	return structural
}

// SecurityCandidate is one unreconciled observation of a security position.
type SecurityCandidate struct {
	ISIN        string
	Description string
	Type        SecurityType
	Valuation   *Amount
	IsTotal     bool
	Provenance  Provenance
}

// AllocationCandidate is one unreconciled observation of an asset-allocation
// row. RawLabel preserves the original indentation, which the hierarchy
// builder later reads as a nesting signal.
type AllocationCandidate struct {
	Label      string
	RawLabel   string
	Value      *Amount
	Percentage *Percent
	Provenance Provenance
}

// ValueCandidate is one unreconciled observation of the total portfolio
// value. Confidence weighs the observation by how much its source class is
// trusted; agreeing candidates pool their weight during reconciliation.
type ValueCandidate struct {
	Value      Amount
	Confidence float64
	Provenance Provenance
}

// sourceConfidence is the trust placed in one observation from the given
// source class.
func sourceConfidence(kind SourceKind) float64 {
	switch kind {
	case SourceTable:
		return 1.0
	case SourceText:
		return 0.8
	case SourceOCR:
		return 0.5
	}
	return 0.5
}

// Candidates is the collector's complete output for one document.
type Candidates struct {
	Securities  []SecurityCandidate
	Allocations []AllocationCandidate
	Values      []ValueCandidate
	Currency    string
	Errors      []ExtractionError
}

// ExtractionError records that a backend's fragment could not be used, as
// opposed to a backend that simply produced nothing. It is carried in the
// result rather than aborting anything.
type ExtractionError struct {
	Method string
	Stage  string
	Err    error
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Method, e.Stage, e.Err)
}

func (e ExtractionError) Unwrap() error { return e.Err }
