package statement

// The hierarchy builder rebuilds the asset-class tree from flat rows whose
// only nesting signal is how far their label was indented in the original
// table. Level inference is a pluggable strategy so other signals (font
// size, bullet markers) can be substituted without touching the stack
// algorithm.

// LevelStrategy infers the nesting level of an allocation row from its raw
// label. Level 0 is a top-level asset class.
type LevelStrategy interface {
	Level(rawLabel string) int
}

// IndentStrategy buckets rows into levels 0, 1 and 2 by counting leading
// whitespace, tabs counting as full stops of the shallow threshold.
type IndentStrategy struct {
	Shallow int // at or above this many characters: level 1
	Deep    int // at or above this many characters: level 2
}

func (s IndentStrategy) Level(rawLabel string) int {
	indent := 0
	for _, r := range rawLabel {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += s.Shallow
		default:
			if indent >= s.Deep {
				return 2
			}
			if indent >= s.Shallow {
				return 1
			}
			return 0
		}
	}
	return 0 // blank label
}

// BuildHierarchy determines each row's level, marks totals, assembles the
// path stack and links parents to children. The input order is document
// order and is preserved; the input slice is not mutated.
func BuildHierarchy(entries []Allocation, strategy LevelStrategy) []Allocation {
	out := make([]Allocation, len(entries))
	copy(out, entries)

	var stack []string
	for i := range out {
		level := strategy.Level(out[i].RawLabel)
		out[i].IsTotal = totalRe.MatchString(out[i].AssetClass)

		// a deep row with no plausible ancestor degrades to a root row
		if level > 0 && !hasAncestor(out[:i], level) {
			level = 0
		}
		out[i].Level = level

		if level >= len(stack) {
			stack = append(stack, out[i].AssetClass)
		} else {
			stack = stack[:level]
			stack = append(stack, out[i].AssetClass)
		}
		out[i].Path = make([]string, len(stack))
		copy(out[i].Path, stack)

		out[i].Parent = -1
		out[i].Children = nil
	}

	// nearest prior row with a strictly smaller level is the parent
	for i := range out {
		if out[i].Level == 0 {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if out[j].Level < out[i].Level {
				out[i].Parent = j
				out[j].Children = append(out[j].Children, i)
				break
			}
		}
	}
	return out
}

func hasAncestor(prior []Allocation, level int) bool {
	for j := len(prior) - 1; j >= 0; j-- {
		if prior[j].Level < level {
			return true
		}
	}
	return false
}

// PercentSum adds up the percentages of top-level, non-total rows. It
// reports false when no row carries a percentage at all.
func PercentSum(entries []Allocation) (Percent, bool) {
	var sum Percent
	counted := 0
	for _, e := range entries {
		if e.IsTotal || e.Level != 0 || e.Percentage == nil {
			continue
		}
		sum += *e.Percentage
		counted++
	}
	return sum, counted > 0
}

// NormalizePercentages rescales allocation percentages so the top-level,
// non-total rows sum to exactly 100. Child rows are scaled by the same
// factor, preserving their proportion to their parents. Entries without a
// percentage, and inputs that sum to zero, are left untouched.
//
// Rescaling repairs the display, not the inconsistency: callers must record
// the extracted sum first so validation can still see the drift.
func NormalizePercentages(entries []Allocation) []Allocation {
	sum, ok := PercentSum(entries)
	if !ok || sum <= 0 {
		return entries
	}

	factor := 100 / float64(sum)
	out := make([]Allocation, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].Percentage == nil {
			continue
		}
		p := Percent(float64(*out[i].Percentage) * factor)
		out[i].Percentage = &p
	}
	return out
}
