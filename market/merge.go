package market

import "sort"

// Merge combines per-instrument bar series into one global chronological
// sequence. Ties between instruments on the same timestamp break by
// lexicographic instrument order so a run is always reproducible.
//
// Each input series is validated first; any integrity error aborts the
// merge.
func Merge(series ...[]Bar) ([]Bar, error) {
	total := 0
	for _, s := range series {
		if err := ValidateSeries(s); err != nil {
			return nil, err
		}
		total += len(s)
	}

	merged := make([]Bar, 0, total)
	heads := make([]int, len(series))

	for {
		best := -1
		for i, s := range series {
			if heads[i] >= len(s) {
				continue
			}
			if best == -1 {
				best = i
				continue
			}
			a, b := s[heads[i]], series[best][heads[best]]
			if a.Time.Before(b.Time) || (a.Time.Equal(b.Time) && a.Instrument < b.Instrument) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		merged = append(merged, series[best][heads[best]])
		heads[best]++
	}

	return merged, nil
}

// SplitByInstrument groups a mixed bar slice into per-instrument series,
// preserving the input order within each instrument.
func SplitByInstrument(bars []Bar) map[string][]Bar {
	out := make(map[string][]Bar)
	for _, b := range bars {
		out[b.Instrument] = append(out[b.Instrument], b)
	}
	return out
}

// Instruments returns the sorted set of instruments present in bars.
func Instruments(bars []Bar) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, b := range bars {
		if _, ok := seen[b.Instrument]; ok {
			continue
		}
		seen[b.Instrument] = struct{}{}
		names = append(names, b.Instrument)
	}
	sort.Strings(names)
	return names
}
