package statement

import "testing"

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "19510599", 19510599, true},
		{"comma thousands", "19,510,599.00", 19510599, true},
		{"apostrophe thousands", "19'510'599.00", 19510599, true},
		{"mixed currency prefix", "CHF 2'560'667.00", 2560667, true},
		{"trailing currency", "1,234.56 USD", 1234.56, true},
		{"negative", "-26129.00", -26129, true},
		{"decimal only", "0.14", 0.14, true},
		{"whitespace", "  47850.00  ", 47850, true},
		{"empty", "", 0, false},
		{"letters only", "Bonds", 0, false},
		{"lone dash", "-", 0, false},
		{"lone dot", ".", 0, false},
		{"dots and dashes", "-.-", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseAmount(tc.input)
			if ok != tc.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if ok && got.Float64() != tc.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.input, got.Float64(), tc.want)
			}
		})
	}
}

func TestParsePercent(t *testing.T) {
	testCases := []struct {
		input string
		want  Percent
		ok    bool
	}{
		{"59.24%", 59.24, true},
		{"59.24 %", 59.24, true},
		{"100%", 100, true},
		{"0.13", 0.13, true}, // percent column without the sign
		{"n/a", 0, false},
		{"", 0, false},
	}
	for _, tc := range testCases {
		got, ok := ParsePercent(tc.input)
		if ok != tc.ok {
			t.Fatalf("ParsePercent(%q) ok = %v, want %v", tc.input, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("ParsePercent(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestLooksPercent(t *testing.T) {
	if !looksPercent("40.24%") {
		t.Error("looksPercent(40.24%) = false, want true")
	}
	if looksPercent("40.24") {
		t.Error("looksPercent(40.24) = true, want false")
	}
	if looksPercent("%") {
		t.Error("looksPercent(%) = true, want false")
	}
}

func TestMedianAmount(t *testing.T) {
	mk := func(vs ...float64) []Amount {
		out := make([]Amount, len(vs))
		for i, v := range vs {
			out[i] = A(v, "")
		}
		return out
	}
	testCases := []struct {
		name string
		in   []Amount
		want float64
	}{
		{"empty", nil, 0},
		{"single", mk(42), 42},
		{"odd resists outlier", mk(100, 101, 9999), 101},
		{"even midpoint", mk(10, 20), 15},
		{"unsorted input", mk(30, 10, 20), 20},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MedianAmount(tc.in).Float64(); got != tc.want {
				t.Errorf("MedianAmount = %v, want %v", got, tc.want)
			}
		})
	}
}
