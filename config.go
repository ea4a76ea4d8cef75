package statement

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options carries the tunable parameters of the engine. The defaults are the
// values the test suite pins; they materially change validation outcomes, so
// they are configuration rather than constants.
type Options struct {
	// SourcePrecedence orders source classes from most to least trusted
	// when merging conflicting candidates.
	SourcePrecedence []SourceKind `yaml:"source_precedence"`

	// MinValuation rejects small numbers found near an ISIN in free text;
	// they are quantities or unit prices, not market values.
	MinValuation float64 `yaml:"min_valuation"`

	// SecuritiesTolerance is the relative gap allowed between the summed
	// security valuations and the portfolio value.
	SecuritiesTolerance float64 `yaml:"securities_tolerance"`

	// AllocationTolerance is the relative gap allowed between the summed
	// allocation values and the portfolio value.
	AllocationTolerance float64 `yaml:"allocation_tolerance"`

	// PercentTolerance is how far, in percentage points, allocation
	// percentages may drift from 100.
	PercentTolerance float64 `yaml:"percent_tolerance"`

	// StructuredGapTolerance is the relative gap between the declared
	// structured-products total and the itemized sum above which a
	// placeholder repair is inserted.
	StructuredGapTolerance float64 `yaml:"structured_gap_tolerance"`

	// IndentShallow and IndentDeep are the leading-whitespace thresholds
	// that bucket an allocation label into level 0, 1 or 2.
	IndentShallow int `yaml:"indent_shallow"`
	IndentDeep    int `yaml:"indent_deep"`

	// Currency denominates the statement when the document itself does not
	// reveal one.
	Currency string `yaml:"currency"`
}

// DefaultOptions returns the engine defaults: tables beat text beat OCR,
// 10% tolerance on securities (statements rarely itemize accrued interest),
// 5% everywhere else.
func DefaultOptions() Options {
	return Options{
		SourcePrecedence:       []SourceKind{SourceTable, SourceText, SourceOCR},
		MinValuation:           1000,
		SecuritiesTolerance:    0.10,
		AllocationTolerance:    0.05,
		PercentTolerance:       5.0,
		StructuredGapTolerance: 0.05,
		IndentShallow:          4,
		IndentDeep:             8,
	}
}

// LoadOptions reads a YAML options file over the defaults, so a partial file
// only overrides what it mentions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("cannot read options file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("cannot parse options file %q: %w", path, err)
	}
	return opts, nil
}

// rank returns the precedence of a source class, lower is better. Unlisted
// classes rank last.
func (o Options) rank(k SourceKind) int {
	for i, s := range o.SourcePrecedence {
		if s == k {
			return i
		}
	}
	return len(o.SourcePrecedence)
}
