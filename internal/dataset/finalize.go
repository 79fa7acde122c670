/**
 * @description
 * Final cleaning pass, applied in a fixed order: exact-duplicate removal,
 * critical-column null drop, then price-outlier trimming against the batch's
 * own 99.5th percentile. Deduplication and null-dropping happen before the
 * percentile is computed so repeated or empty extreme rows can't skew it.
 */

package dataset

import "sort"

const outlierQuantile = 0.995

// finalize runs the three finalizer steps and records row-level diagnostics.
func finalize(t *Table, diag *Diagnostics) *Table {
	deduped := dropDuplicates(t, diag)
	surviving := dropMissingCritical(deduped, diag)
	return trimPriceOutliers(surviving, diag)
}

// dropDuplicates removes rows that are identical across all columns,
// keeping the first occurrence.
func dropDuplicates(t *Table, diag *Diagnostics) *Table {
	seen := make(map[string]bool, t.NumRows())
	out := t.Filter(func(row int) bool {
		key := t.RowFingerprint(row)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
	diag.DuplicatesRemoved = t.NumRows() - out.NumRows()
	return out
}

// dropMissingCritical removes rows missing hotel_name or price_per_night,
// for whichever of the two columns the schema actually has.
func dropMissingCritical(t *Table, diag *Diagnostics) *Table {
	critical := []string{}
	for _, col := range []string{"hotel_name", "price_per_night"} {
		if t.HasColumn(col) {
			critical = append(critical, col)
		}
	}
	if len(critical) == 0 {
		return t
	}
	out := t.Filter(func(row int) bool {
		for _, col := range critical {
			if t.At(row, col).IsMissing() {
				return false
			}
		}
		return true
	})
	diag.MissingCriticalDropped = t.NumRows() - out.NumRows()
	return out
}

// trimPriceOutliers drops rows whose price exceeds the batch's 99.5th
// percentile. No-op when no price column survived normalization.
func trimPriceOutliers(t *Table, diag *Diagnostics) *Table {
	if !t.HasColumn("price_per_night") {
		return t
	}
	prices := make([]float64, 0, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		if n, ok := t.At(r, "price_per_night").AsNumber(); ok {
			prices = append(prices, n)
		}
	}
	if len(prices) == 0 {
		return t
	}
	limit := quantile(prices, outlierQuantile)
	diag.PriceCap = limit
	out := t.Filter(func(row int) bool {
		n, ok := t.At(row, "price_per_night").AsNumber()
		return !ok || n <= limit
	})
	diag.OutliersRemoved = t.NumRows() - out.NumRows()
	return out
}

// quantile computes the q-th quantile with linear interpolation between
// closest ranks, matching the original analysis pipeline's convention.
func quantile(values []float64, q float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	if len(s) == 1 {
		return s[0]
	}
	pos := q * float64(len(s)-1)
	lo := int(pos)
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	frac := pos - float64(lo)
	return s[lo] + frac*(s[lo+1]-s[lo])
}
