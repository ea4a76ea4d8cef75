package statement

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONObjectWriterOrder(t *testing.T) {
	var w jsonObjectWriter
	w.Append("b", 1).Append("a", 2).Optional("skipped", "").Optional("kept", "x")
	got, err := json.Marshal(&w)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"b":1,"a":2,"kept":"x"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONObjectWriterEmpty(t *testing.T) {
	var w jsonObjectWriter
	got, err := json.Marshal(&w)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("got %s, want {}", got)
	}
}

func TestEncodeModel(t *testing.T) {
	m := validModel()
	m.Currency = "CHF"
	m.Validation = Validate(m, DefaultOptions())

	data, err := EncodeModel(m)
	if err != nil {
		t.Fatal(err)
	}

	// the document must be valid JSON with the contract's sections
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	for _, key := range []string{"portfolio_value", "securities", "asset_allocation", "structured_products", "validation"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	pv := decoded["portfolio_value"].(map[string]any)
	if pv["value"].(float64) != 19510599 {
		t.Errorf("portfolio value = %v", pv["value"])
	}
	if pv["confidence"].(float64) != 1 {
		t.Errorf("confidence = %v", pv["confidence"])
	}

	validation := decoded["validation"].(map[string]any)
	for _, section := range []string{"portfolio_value", "securities", "asset_allocation", "overall"} {
		entry, ok := validation[section].(map[string]any)
		if !ok {
			t.Fatalf("validation section %q missing", section)
		}
		if _, ok := entry["valid"].(bool); !ok {
			t.Errorf("validation.%s.valid missing", section)
		}
		if _, ok := entry["issues"].([]any); !ok {
			t.Errorf("validation.%s.issues missing or null", section)
		}
	}

	// section order is part of the contract
	text := string(data)
	if strings.Index(text, `"portfolio_value"`) > strings.Index(text, `"securities"`) {
		t.Error("portfolio_value must precede securities")
	}
}

func TestEncodeModelNoPortfolioValue(t *testing.T) {
	m := &Model{}
	m.Validation = Validate(m, DefaultOptions())
	data, err := EncodeModel(m)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["portfolio_value"] != nil {
		t.Errorf("portfolio_value = %v, want null", decoded["portfolio_value"])
	}
}

func TestAmountJSONIsPlainNumber(t *testing.T) {
	a := A(2560667.004, "CHF")
	got, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "2560667" {
		t.Errorf("Amount JSON = %s, want 2560667", got)
	}
	b := A(0.145, "")
	got, _ = json.Marshal(b)
	if string(got) != "0.15" && string(got) != "0.14" {
		t.Errorf("Amount JSON = %s, want two decimals", got)
	}
}
