package statement

// Deduplication collapses the N candidates describing one real-world entity
// into a single canonical record without losing auditability: every merged
// record keeps the provenance of every input it swallowed.

// DedupeSecurities merges security candidates sharing an identity key (ISIN,
// or a description/value fingerprint when no ISIN was read). Output order is
// the order in which each identity was first observed.
func DedupeSecurities(cands []SecurityCandidate, opts Options) []Security {
	groups := map[string][]SecurityCandidate{}
	var order []string
	for _, c := range cands {
		key := candidateKey(c)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	out := make([]Security, 0, len(order))
	for _, key := range order {
		out = append(out, mergeSecurities(groups[key], opts))
	}
	return out
}

func candidateKey(c SecurityCandidate) string {
	if c.ISIN != "" {
		return c.ISIN
	}
	return fingerprint(c.Description, c.Valuation)
}

func mergeSecurities(group []SecurityCandidate, opts Options) Security {
	sec := Security{
		ISIN:    group[0].ISIN,
		IsTotal: group[0].IsTotal,
		Sources: make([]Provenance, 0, len(group)),
	}
	for _, c := range group {
		sec.Sources = append(sec.Sources, c.Provenance)
	}

	// valuations only count from the most trusted source class present
	best := len(opts.SourcePrecedence)
	for _, c := range group {
		if r := opts.rank(c.Provenance.Source); r < best {
			best = r
		}
	}
	var valuations []Amount
	for _, c := range group {
		if c.Valuation != nil && opts.rank(c.Provenance.Source) == best {
			valuations = append(valuations, *c.Valuation)
		}
	}
	if len(valuations) == 0 {
		// the trusted class read no number; fall back to whatever did
		for _, c := range group {
			if c.Valuation != nil {
				valuations = append(valuations, *c.Valuation)
			}
		}
	}
	if len(valuations) > 0 {
		v := MedianAmount(valuations)
		sec.Valuation = &v
	}

	sec.Description = mostFrequent(group, func(c SecurityCandidate) string { return c.Description })
	if kind := mostFrequent(group, func(c SecurityCandidate) string {
		if c.Type == Unknown {
			return ""
		}
		return string(c.Type)
	}); kind != "" {
		sec.Type = SecurityType(kind)
	} else {
		sec.Type = Unknown
	}

	if sec.ISIN != "" {
		res := CheckISIN(sec.ISIN)
		sec.Valid = res.Valid
		sec.Reason = res.Reason
	} else {
		sec.Valid = true
	}
	return sec
}

// mostFrequent returns the most frequent non-empty projection of the group,
// breaking ties by first appearance.
func mostFrequent[T any](group []T, project func(T) string) string {
	counts := map[string]int{}
	var order []string
	for _, item := range group {
		s := project(item)
		if s == "" {
			continue
		}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	best, bestCount := "", 0
	for _, s := range order {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

// DedupeAllocations merges allocation candidates by normalized label, taking
// the median of values and percentages across observations.
func DedupeAllocations(cands []AllocationCandidate, opts Options) []Allocation {
	groups := map[string][]AllocationCandidate{}
	var order []string
	for _, c := range cands {
		key := normalizeLabel(c.Label)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	out := make([]Allocation, 0, len(order))
	for _, key := range order {
		group := groups[key]
		a := Allocation{
			AssetClass: group[0].Label,
			RawLabel:   group[0].RawLabel,
			Parent:     -1,
			Sources:    make([]Provenance, 0, len(group)),
		}
		for _, c := range group {
			a.Sources = append(a.Sources, c.Provenance)
		}
		var values []Amount
		var percents []float64
		for _, c := range group {
			if c.Value != nil {
				values = append(values, *c.Value)
			}
			if c.Percentage != nil {
				percents = append(percents, float64(*c.Percentage))
			}
		}
		if len(values) > 0 {
			v := MedianAmount(values)
			a.Value = &v
		}
		if len(percents) > 0 {
			p := Percent(medianFloat(percents))
			a.Percentage = &p
		}
		out = append(out, a)
	}
	return out
}

func medianFloat(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ReconcilePortfolioValue elects the canonical portfolio value: the value the
// largest number of candidates agree on, ties broken by the pooled confidence
// of the agreeing observations, so one table reading still beats one OCR
// reading. Confidence is the share of candidates that agreed on the winner.
// It returns nil when there is no candidate at all.
func ReconcilePortfolioValue(cands []ValueCandidate, opts Options) *PortfolioValue {
	if len(cands) == 0 {
		return nil
	}

	type bucket struct {
		value  Amount
		votes  int
		weight float64 // pooled observation confidence
	}
	var buckets []*bucket
	for _, c := range cands {
		w := c.Confidence
		if w == 0 {
			w = sourceConfidence(c.Provenance.Source)
		}
		found := false
		for _, b := range buckets {
			if b.value.Equal(c.Value) {
				b.votes++
				b.weight += w
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, &bucket{value: c.Value, votes: 1, weight: w})
		}
	}

	winner := buckets[0]
	for _, b := range buckets[1:] {
		if b.votes > winner.votes || (b.votes == winner.votes && b.weight > winner.weight) {
			winner = b
		}
	}

	pv := &PortfolioValue{
		Value:      winner.value,
		Confidence: float64(winner.votes) / float64(len(cands)),
	}
	for _, c := range cands {
		pv.Sources = append(pv.Sources, c.Provenance)
	}
	return pv
}
