package statement

import (
	"reflect"
	"testing"
)

func defaultStrategy() IndentStrategy {
	opts := DefaultOptions()
	return IndentStrategy{Shallow: opts.IndentShallow, Deep: opts.IndentDeep}
}

func TestIndentStrategyLevels(t *testing.T) {
	s := defaultStrategy()
	testCases := []struct {
		raw  string
		want int
	}{
		{"Bonds", 0},
		{"  Bonds", 0},
		{"    Government bonds", 1},
		{"      Corporate bonds", 1},
		{"        CHF denominated", 2},
		{"\tGovernment bonds", 1},
		{"\t\tCHF denominated", 2},
		{"", 0},
	}
	for _, tc := range testCases {
		if got := s.Level(tc.raw); got != tc.want {
			t.Errorf("Level(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func alloc(raw string, value, percentage float64) Allocation {
	a := Allocation{AssetClass: trimIndent(raw), RawLabel: raw, Parent: -1}
	if value != 0 {
		a.Value = amt(value)
	}
	if percentage != 0 {
		a.Percentage = pct(percentage)
	}
	return a
}

func trimIndent(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}

func TestBuildHierarchy(t *testing.T) {
	entries := []Allocation{
		alloc("Bonds", 11558957, 59.24),
		alloc("    Government bonds", 8000000, 41.00),
		alloc("    Corporate bonds", 3558957, 18.24),
		alloc("Equities", 27406, 0.14),
		alloc("Total assets", 19510599, 100),
	}
	got := BuildHierarchy(entries, defaultStrategy())

	wantLevels := []int{0, 1, 1, 0, 0}
	for i, want := range wantLevels {
		if got[i].Level != want {
			t.Errorf("entry %d level = %d, want %d", i, got[i].Level, want)
		}
	}
	if got[1].Parent != 0 || got[2].Parent != 0 {
		t.Errorf("government/corporate parents = %d, %d, want 0, 0", got[1].Parent, got[2].Parent)
	}
	if !reflect.DeepEqual(got[0].Children, []int{1, 2}) {
		t.Errorf("Bonds children = %v, want [1 2]", got[0].Children)
	}
	if !reflect.DeepEqual(got[1].Path, []string{"Bonds", "Government bonds"}) {
		t.Errorf("Path = %v", got[1].Path)
	}
	if !reflect.DeepEqual(got[3].Path, []string{"Equities"}) {
		t.Errorf("Equities path = %v", got[3].Path)
	}
	if !got[4].IsTotal {
		t.Error("Total assets row not marked IsTotal")
	}
	if got[0].IsTotal {
		t.Error("Bonds row wrongly marked IsTotal")
	}
}

func TestBuildHierarchy_OrphanDegradesToRoot(t *testing.T) {
	// an indented first row has no qualifying ancestor: treated as level 0
	entries := []Allocation{
		alloc("        Deeply indented", 1000, 1),
		alloc("Bonds", 11558957, 59.24),
	}
	got := BuildHierarchy(entries, defaultStrategy())
	if got[0].Level != 0 {
		t.Errorf("orphan level = %d, want 0", got[0].Level)
	}
	if got[0].Parent != -1 {
		t.Errorf("orphan parent = %d, want -1", got[0].Parent)
	}
}

func TestBuildHierarchy_Idempotent(t *testing.T) {
	entries := []Allocation{
		alloc("Bonds", 11558957, 59.24),
		alloc("    Government bonds", 8000000, 41.00),
		alloc("Equities", 27406, 0.14),
	}
	once := BuildHierarchy(entries, defaultStrategy())
	twice := BuildHierarchy(once, defaultStrategy())
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the structure:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestPercentSum(t *testing.T) {
	entries := BuildHierarchy([]Allocation{
		alloc("Bonds", 3000000, 30),
		alloc("Equities", 2000000, 20),
		alloc("Total assets", 5000000, 50),
	}, defaultStrategy())

	sum, ok := PercentSum(entries)
	if !ok {
		t.Fatal("percentages present but not counted")
	}
	if !sum.Equal(50) {
		t.Errorf("sum = %v, want 50 (total row excluded)", sum)
	}

	if _, ok := PercentSum(nil); ok {
		t.Error("empty input reported a sum")
	}
}

func TestNormalizePercentages(t *testing.T) {
	entries := []Allocation{
		alloc("Bonds", 0, 30),
		alloc("Equities", 0, 20),
		alloc("Cash", 0, 10),
	}
	got := NormalizePercentages(BuildHierarchy(entries, defaultStrategy()))
	var sum float64
	for _, e := range got {
		sum += float64(*e.Percentage)
	}
	if sum < 99.99 || sum > 100.01 {
		t.Errorf("normalized sum = %v, want 100 +- 0.01", sum)
	}
	if !got[0].Percentage.Equal(50) {
		t.Errorf("Bonds = %v, want 50", *got[0].Percentage)
	}
}

func TestNormalizePercentages_AlreadyNormalized(t *testing.T) {
	// scenario from a real statement: the five classes sum to 100 exactly
	entries := []Allocation{
		alloc("Bonds", 11558957, 59.24),
		alloc("Structured Products", 7850257, 40.24),
		alloc("Equities", 27406, 0.14),
		alloc("Liquidity", 47850, 0.25),
		alloc("Other assets", 26129, 0.13),
	}
	got := NormalizePercentages(BuildHierarchy(entries, defaultStrategy()))
	for i, e := range entries {
		if !got[i].Percentage.Equal(*e.Percentage) {
			t.Errorf("%s changed from %v to %v", e.AssetClass, *e.Percentage, *got[i].Percentage)
		}
	}
}

func TestNormalizePercentages_ZeroSumUntouched(t *testing.T) {
	entries := []Allocation{alloc("Bonds", 11558957, 0)}
	got := NormalizePercentages(entries)
	if got[0].Percentage != nil {
		t.Errorf("Percentage = %v, want nil untouched", got[0].Percentage)
	}
}
