package statement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`.
func (w *jsonObjectWriter) Append(key string, value interface{}) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	w.WriteString(fmt.Sprintf("%q:", key))
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// Optional appends a key-value pair to the JSON object only if the provided
// value is not its type's zero value. This helps in omitting empty or default
// fields from the JSON output.
func (w *jsonObjectWriter) Optional(key string, value interface{}) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice. It satisfies the
// `json.Marshaler` interface.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	var out bytes.Buffer
	out.WriteString("{")
	out.Write(content)
	out.WriteString("}")
	return out.Bytes(), nil
}

// Output contract types. Field order here is the field order downstream
// collaborators see.

type securityJSON struct {
	ISIN        string       `json:"isin"`
	Description string       `json:"description"`
	Type        SecurityType `json:"security_type"`
	Valuation   *Amount      `json:"valuation"`
	Valid       bool         `json:"is_valid"`
	Reason      string       `json:"reason,omitempty"`
	Placeholder bool         `json:"is_placeholder,omitempty"`
	Sources     []Provenance `json:"sources,omitempty"`
}

type allocationJSON struct {
	AssetClass string   `json:"asset_class"`
	Value      *Amount  `json:"value"`
	Percentage *Percent `json:"percentage"`
	Level      int      `json:"level"`
	Path       []string `json:"path,omitempty"`
	IsTotal    bool     `json:"is_total"`
}

type structuredItemJSON struct {
	ISIN        string  `json:"isin"`
	Description string  `json:"description"`
	Valuation   *Amount `json:"valuation"`
	Placeholder bool    `json:"is_placeholder,omitempty"`
}

type validationJSON struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// EncodeModel renders the canonical JSON document, the single interface
// surface the engine exposes to report generators, persistence and tooling.
func EncodeModel(m *Model) ([]byte, error) {
	var w jsonObjectWriter

	if m.PortfolioValue != nil {
		var pv jsonObjectWriter
		pv.Append("value", m.PortfolioValue.Value)
		pv.Append("confidence", round3(m.PortfolioValue.Confidence))
		pv.Optional("sources", m.PortfolioValue.Sources)
		w.Append("portfolio_value", &pv)
	} else {
		w.Append("portfolio_value", nil)
	}

	w.Optional("statement_date", m.StatementDate.String())
	w.Optional("currency", m.Currency)

	securities := make([]securityJSON, 0, len(m.Securities))
	for _, s := range m.Securities {
		if s.IsTotal {
			continue
		}
		securities = append(securities, securityJSON{
			ISIN:        s.ISIN,
			Description: s.Description,
			Type:        s.Type,
			Valuation:   s.Valuation,
			Valid:       s.Valid,
			Reason:      s.Reason,
			Placeholder: s.IsPlaceholder,
			Sources:     s.Sources,
		})
	}
	w.Append("securities", securities)

	allocations := make([]allocationJSON, 0, len(m.Allocations))
	for _, a := range m.Allocations {
		allocations = append(allocations, allocationJSON{
			AssetClass: a.AssetClass,
			Value:      a.Value,
			Percentage: a.Percentage,
			Level:      a.Level,
			Path:       a.Path,
			IsTotal:    a.IsTotal,
		})
	}
	w.Append("asset_allocation", allocations)

	structured := make([]structuredItemJSON, 0, len(m.Structured.Items))
	for _, s := range m.Structured.Items {
		structured = append(structured, structuredItemJSON{
			ISIN:        s.ISIN,
			Description: s.Description,
			Valuation:   s.Valuation,
			Placeholder: s.IsPlaceholder,
		})
	}
	w.Append("structured_products", structured)

	var sp jsonObjectWriter
	sp.Optional("declared_total", m.Structured.DeclaredTotal)
	sp.Optional("reconciliation_gap", m.Structured.Gap)
	sp.Append("placeholder_inserted", m.Structured.PlaceholderInserted)
	w.Append("structured_products_summary", &sp)

	var validation jsonObjectWriter
	for _, section := range []ValidationResult{
		m.Validation.PortfolioValue,
		m.Validation.Securities,
		m.Validation.AssetAllocation,
		m.Validation.Overall,
	} {
		issues := section.Issues
		if issues == nil {
			issues = []string{}
		}
		validation.Append(section.Section, validationJSON{Valid: section.Valid, Issues: issues})
	}
	w.Append("validation", &validation)

	if len(m.Errors) > 0 {
		msgs := make([]string, len(m.Errors))
		for i, e := range m.Errors {
			msgs[i] = e.Error()
		}
		w.Append("extraction_errors", msgs)
	}

	return json.MarshalIndent(&w, "", "  ")
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
