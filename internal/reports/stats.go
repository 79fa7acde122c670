/**
 * @description
 * Column-level statistics helpers shared by the report aggregators.
 * All helpers read typed table cells and skip missing/non-numeric values,
 * so a sparse column yields stats over its present values only.
 *
 * @dependencies
 * - backend/internal/dataset
 */

package reports

import (
	"math"
	"sort"

	"github.com/staylens/backend/internal/dataset"
)

// Summary is a distribution summary for one numeric column.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// CountEntry is one bucket of a categorical distribution.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func numericColumn(t *dataset.Table, col string) []float64 {
	if !t.HasColumn(col) {
		return nil
	}
	out := make([]float64, 0, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		if n, ok := t.At(r, col).AsNumber(); ok {
			out = append(out, n)
		}
	}
	return out
}

func summarize(values []float64) *Summary {
	if len(values) == 0 {
		return nil
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return &Summary{
		Count:  len(s),
		Mean:   mean(s),
		Median: percentile(s, 0.5),
		Std:    std(s),
		Min:    s[0],
		Max:    s[len(s)-1],
		Q25:    percentile(s, 0.25),
		Q75:    percentile(s, 0.75),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std is the sample standard deviation (n-1 denominator).
func std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// percentile expects sorted input and interpolates linearly between ranks.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// quantileOf sorts a copy of values and interpolates the q-th quantile.
func quantileOf(values []float64, q float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return percentile(s, q)
}

// pearson computes the correlation coefficient over paired slices.
// Returns 0 when either side has no variance or the pair count is short.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// pairedColumns returns rows where both columns hold numbers.
func pairedColumns(t *dataset.Table, colA, colB string) ([]float64, []float64) {
	if !t.HasColumn(colA) || !t.HasColumn(colB) {
		return nil, nil
	}
	var xs, ys []float64
	for r := 0; r < t.NumRows(); r++ {
		a, okA := t.At(r, colA).AsNumber()
		b, okB := t.At(r, colB).AsNumber()
		if okA && okB {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	return xs, ys
}

// valueCounts tallies string cells of a column, most frequent first.
// Ties break alphabetically so output ordering is deterministic.
func valueCounts(t *dataset.Table, col string) []CountEntry {
	if !t.HasColumn(col) {
		return nil
	}
	counts := map[string]int{}
	for r := 0; r < t.NumRows(); r++ {
		if s, ok := t.At(r, col).AsString(); ok && s != "" {
			counts[s]++
		}
	}
	out := make([]CountEntry, 0, len(counts))
	for label, c := range counts {
		out = append(out, CountEntry{Label: label, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// groupNumeric collects valueCol numbers keyed by the groupCol string.
func groupNumeric(t *dataset.Table, groupCol, valueCol string) map[string][]float64 {
	if !t.HasColumn(groupCol) || !t.HasColumn(valueCol) {
		return nil
	}
	groups := map[string][]float64{}
	for r := 0; r < t.NumRows(); r++ {
		key, ok := t.At(r, groupCol).AsString()
		if !ok || key == "" {
			continue
		}
		if n, okN := t.At(r, valueCol).AsNumber(); okN {
			groups[key] = append(groups[key], n)
		}
	}
	return groups
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
