package statement

import "testing"

func TestLoadRawDocumentPdfplumber(t *testing.T) {
	payload := []byte(`{
		"text": "Valuation as of 31.12.2024 in CHF",
		"tables": [
			{
				"page": 3,
				"headers": ["ISIN", "Description", "Valuation"],
				"rows": [
					["US0378331005", "Apple Inc", "27'406.00"],
					["", "Total securities", 27406]
				]
			}
		]
	}`)
	mapping := DefaultMappings()[0]
	doc, err := LoadRawDocument(payload, mapping)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(doc.Tables))
	}
	table := doc.Tables[0]
	if table.Page != 3 || table.Method != "pdfplumber" {
		t.Errorf("table = %+v", table)
	}
	if len(table.Headers) != 3 || table.Headers[0] != "ISIN" {
		t.Errorf("headers = %v", table.Headers)
	}
	// numeric cells come back as their decimal text
	if table.Rows[1][2] != "27406" {
		t.Errorf("numeric cell = %q, want 27406", table.Rows[1][2])
	}
	if len(doc.Texts) != 1 || doc.Texts[0].Method != "pdfplumber" {
		t.Errorf("texts = %+v", doc.Texts)
	}
}

func TestLoadRawDocumentCamelot(t *testing.T) {
	// camelot puts the header row inside the data grid
	payload := []byte(`{
		"tables": [
			{
				"page_number": 5,
				"data": [
					["Asset class", "Value"],
					["Bonds", "11'558'957.00"],
					["Equities", "27'406.00"]
				]
			}
		]
	}`)
	doc, err := LoadRawDocument(payload, DefaultMappings()[1])
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Tables[0]
	if table.Page != 5 {
		t.Errorf("page = %d, want 5", table.Page)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Asset class" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "Bonds" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestLoadRawDocumentOCR(t *testing.T) {
	payload := []byte(`{"text": "Total assets 19'510'599.00"}`)
	doc, err := LoadRawDocument(payload, DefaultMappings()[2])
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Texts) != 1 || doc.Texts[0].Method != "tesseract-ocr" {
		t.Fatalf("texts = %+v", doc.Texts)
	}
}

func TestLoadRawDocumentBadPayload(t *testing.T) {
	if _, err := LoadRawDocument([]byte(`not json`), DefaultMappings()[0]); err == nil {
		t.Error("invalid JSON must fail")
	}
	if _, err := LoadRawDocument([]byte(`{"tables": "nope"}`), DefaultMappings()[0]); err == nil {
		t.Error("non-list tables must fail")
	}
}

func TestMergeRawDocuments(t *testing.T) {
	a := RawDocument{Tables: []RawTable{{Method: "camelot"}}}
	b := RawDocument{Texts: []RawText{{Method: "tesseract-ocr", Text: "x"}}}
	got := MergeRawDocuments(a, b)
	if len(got.Tables) != 1 || len(got.Texts) != 1 {
		t.Errorf("merged = %+v", got)
	}
}
