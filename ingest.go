package statement

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// BackendMapping describes where one extraction backend puts its output
// inside its JSON payload. Every backend has its own shape, so the paths are
// data, not code: adding a backend means adding a mapping, not a parser.
type BackendMapping struct {
	// Method names the backend in the provenance of every candidate.
	Method string `yaml:"method"`
	// TablesPath selects the list of table objects, e.g. "$.tables".
	TablesPath string `yaml:"tables_path"`
	// PagePath, HeadersPath and RowsPath select fields inside one table
	// object of that list.
	PagePath    string `yaml:"page_path"`
	HeadersPath string `yaml:"headers_path"`
	RowsPath    string `yaml:"rows_path"`
	// TextPath selects the extracted free text, e.g. "$.text".
	TextPath string `yaml:"text_path"`
}

// DefaultMappings covers the payload shapes of the usual extraction
// backends.
func DefaultMappings() []BackendMapping {
	return []BackendMapping{
		{
			Method:      "pdfplumber",
			TablesPath:  "$.tables",
			PagePath:    "$.page",
			HeadersPath: "$.headers",
			RowsPath:    "$.rows",
			TextPath:    "$.text",
		},
		{
			Method:      "camelot",
			TablesPath:  "$.tables",
			PagePath:    "$.page_number",
			HeadersPath: "$.data[0]",
			RowsPath:    "$.data[1:]",
		},
		{
			Method:   "tesseract-ocr",
			TextPath: "$.text",
		},
	}
}

// LoadRawDocument reads one backend's JSON payload through its mapping and
// returns the tables and texts it contains.
func LoadRawDocument(payload []byte, mapping BackendMapping) (RawDocument, error) {
	var doc RawDocument
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return doc, fmt.Errorf("error parsing %q payload: %w", mapping.Method, err)
	}

	if mapping.TablesPath != "" {
		jval, err := jsonpath.Get(mapping.TablesPath, jobj)
		if err != nil {
			return doc, fmt.Errorf("error reading %q: %q %w", mapping.Method, mapping.TablesPath, err)
		}
		jtables, ok := jval.([]any)
		if !ok {
			return doc, fmt.Errorf("error reading %q: %q is not a list", mapping.Method, mapping.TablesPath)
		}
		for i, jtable := range jtables {
			table, err := loadTable(jtable, mapping)
			if err != nil {
				return doc, fmt.Errorf("error reading %q table %d: %w", mapping.Method, i, err)
			}
			doc.Tables = append(doc.Tables, table)
		}
	}

	if mapping.TextPath != "" {
		jval, err := jsonpath.Get(mapping.TextPath, jobj)
		if err == nil {
			if text, ok := unwrap(jval).(string); ok && text != "" {
				doc.Texts = append(doc.Texts, RawText{Method: mapping.Method, Text: text})
			}
		}
	}
	return doc, nil
}

func loadTable(jtable any, mapping BackendMapping) (RawTable, error) {
	table := RawTable{Method: mapping.Method}

	if mapping.PagePath != "" {
		if jval, err := jsonpath.Get(mapping.PagePath, jtable); err == nil {
			table.Page = toInt(unwrap(jval))
		}
	}
	if mapping.HeadersPath != "" {
		if jval, err := jsonpath.Get(mapping.HeadersPath, jtable); err == nil {
			// a header path may resolve to the header row itself or to a
			// list wrapping it
			if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
				if _, nested := jlist[0].([]any); nested {
					jval = jlist[0]
				}
			}
			table.Headers = toStrings(jval)
		}
	}

	jval, err := jsonpath.Get(mapping.RowsPath, jtable)
	if err != nil {
		return table, fmt.Errorf("%q %w", mapping.RowsPath, err)
	}
	jrows, ok := jval.([]any)
	if !ok {
		return table, fmt.Errorf("%q is not a list of rows", mapping.RowsPath)
	}
	for _, jrow := range jrows {
		table.Rows = append(table.Rows, toStrings(jrow))
	}
	return table, nil
}

// MergeRawDocuments joins the output of several backends into one document.
// Order does not matter downstream: every fragment carries its provenance.
func MergeRawDocuments(docs ...RawDocument) RawDocument {
	var out RawDocument
	for _, d := range docs {
		out.Tables = append(out.Tables, d.Tables...)
		out.Texts = append(out.Texts, d.Texts...)
	}
	return out
}

// unwrap keeps the first element when jsonpath returns a list of one answer
// instead of a single answer.
func unwrap(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

func toStrings(jval any) []string {
	jlist, ok := jval.([]any)
	if !ok {
		return nil
	}
	out := make([]string, len(jlist))
	for i, v := range jlist {
		out[i] = toString(v)
	}
	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return 0
}
