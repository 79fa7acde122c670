/**
 * @description
 * Column-wise normalizers for prices, ratings, counters, dates, categoricals,
 * and coordinates. All transforms are column-presence-gated and fail-soft:
 * malformed values resolve to a policy default (0, Missing, "Unknown", or a
 * clamped value) and are tallied in Diagnostics instead of raised as errors.
 *
 * @dependencies
 * - standard "regexp", "strings", "time"
 *
 * @notes
 * - Canonical columns (price_per_night, overall_rating, reviews_count,
 *   hotel_name) are resolved from source aliases by fixed priority order.
 */

package dataset

import (
	"regexp"
	"strings"
	"time"
)

var (
	priceColumns = []string{"price", "price_per_night", "price_display", "before_taxes_fees"}

	ratingColumns = []string{"overall_rating", "rating", "star_rating"}

	countColumns = []string{
		"reviews_count", "reviews", "number_of_reviews",
		"availability", "availability_365",
		"minimum_nights", "maximum_nights",
		"total_amenities_count", "amenities_count",
	}

	dateColumns = []string{"scrape_date", "last_review", "host_since", "first_review"}

	// nameColumns identify the listing; a missing name drops the row in the
	// finalizer, so these are trimmed but never Unknown-filled.
	nameColumns = []string{"hotel_name", "name", "property_name"}

	categoricalColumns = []string{
		"hotel_type", "property_type", "room_type",
		"location", "neighborhood", "area",
		"host_name", "host_id",
	}
)

var nonNumericRe = regexp.MustCompile(`[^0-9.]`)

// dateLayouts tried in order for best-effort date parsing.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"January 2, 2006",
}

// CleanCurrency strips currency symbols ("$", literal "AED"), thousands
// separators, and any other non-numeric/non-decimal-point characters, then
// parses the remainder. Unparseable or empty values become 0, never an error.
func CleanCurrency(v Value) Value {
	if v.Kind == KindNumber {
		return v
	}
	s, ok := v.AsString()
	if !ok {
		return Number(0)
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "AED", "")
	s = strings.ReplaceAll(s, ",", "")
	s = nonNumericRe.ReplaceAllString(s, "")
	if s == "" {
		return Number(0)
	}
	n, ok := String(s).AsNumber()
	if !ok {
		return Number(0)
	}
	return Number(n)
}

// coerceNumeric converts a cell to a number, degrading to Missing on failure.
func coerceNumeric(v Value) Value {
	if v.IsMissing() {
		return v
	}
	n, ok := v.AsNumber()
	if !ok {
		return Missing()
	}
	return Number(n)
}

// normalizePrices cleans every candidate price column present and resolves
// the canonical price_per_night by priority.
func normalizePrices(t *Table, diag *Diagnostics) {
	for _, col := range priceColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			raw := t.At(r, col)
			cleaned := CleanCurrency(raw)
			if cleaned.Num == 0 && !rawIsZeroish(raw) {
				diag.recordFailure(col)
			}
			t.Set(r, col, cleaned)
		}
	}
	resolveCanonical(t, "price_per_night", "price", "price_display")
}

// rawIsZeroish reports whether a raw cell legitimately cleans to zero, so
// the diagnostics only count genuine degradations.
func rawIsZeroish(v Value) bool {
	if n, ok := v.AsNumber(); ok {
		return n == 0
	}
	if s, ok := v.AsString(); ok {
		n, ok := String(nonNumericRe.ReplaceAllString(strings.ReplaceAll(s, ",", ""), "")).AsNumber()
		return ok && n == 0
	}
	return false
}

// normalizeRatings coerces candidate rating columns to numbers clamped into
// [0, 5] and resolves the canonical overall_rating.
func normalizeRatings(t *Table, diag *Diagnostics) {
	for _, col := range ratingColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			raw := t.At(r, col)
			v := coerceNumeric(raw)
			if v.IsMissing() {
				if !raw.IsMissing() {
					diag.recordFailure(col)
				}
				t.Set(r, col, v)
				continue
			}
			if v.Num < 0 {
				v = Number(0)
			} else if v.Num > 5 {
				v = Number(5)
			}
			t.Set(r, col, v)
		}
	}
	resolveCanonical(t, "overall_rating", "rating")
}

// normalizeCounts coerces counter columns to numbers with Missing -> 0 and
// resolves the canonical reviews_count.
func normalizeCounts(t *Table, diag *Diagnostics) {
	for _, col := range countColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			raw := t.At(r, col)
			v := coerceNumeric(raw)
			if v.IsMissing() {
				if !raw.IsMissing() {
					diag.recordFailure(col)
				}
				v = Number(0)
			}
			t.Set(r, col, v)
		}
	}
	resolveCanonical(t, "reviews_count", "reviews", "number_of_reviews")
}

// normalizeDates best-effort parses date-like columns; unparseable -> Missing.
func normalizeDates(t *Table, diag *Diagnostics) {
	for _, col := range dateColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			raw := t.At(r, col)
			if raw.Kind == KindTime || raw.IsMissing() {
				continue
			}
			s, ok := raw.AsString()
			if !ok {
				t.Set(r, col, Missing())
				diag.recordFailure(col)
				continue
			}
			parsed, ok := parseDate(s)
			if !ok {
				t.Set(r, col, Missing())
				diag.recordFailure(col)
				continue
			}
			t.Set(r, col, Timestamp(parsed))
		}
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizeCategoricals fills missing free-text cells with "Unknown", trims
// whitespace, renders numeric IDs as strings, and resolves hotel_name.
// Name columns keep their missing markers so the finalizer can drop the row.
func normalizeCategoricals(t *Table) {
	for _, col := range nameColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			v := t.At(r, col)
			if v.IsMissing() {
				continue
			}
			s, _ := v.AsString()
			s = strings.TrimSpace(s)
			if s == "" {
				t.Set(r, col, Missing())
				continue
			}
			t.Set(r, col, String(s))
		}
	}
	for _, col := range categoricalColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			v := t.At(r, col)
			if v.IsMissing() {
				t.Set(r, col, String("Unknown"))
				continue
			}
			s, _ := v.AsString()
			t.Set(r, col, String(strings.TrimSpace(s)))
		}
	}
	resolveCanonical(t, "hotel_name", "name", "property_name")
}

// normalizeCoordinates coerces latitude/longitude, filling gaps with the
// configured city-center fallback point.
func normalizeCoordinates(t *Table, opts Options, diag *Diagnostics) {
	fill := map[string]float64{
		"latitude":  opts.FallbackLatitude,
		"longitude": opts.FallbackLongitude,
	}
	for col, fallback := range fill {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			raw := t.At(r, col)
			v := coerceNumeric(raw)
			if v.IsMissing() {
				if !raw.IsMissing() {
					diag.recordFailure(col)
				}
				v = Number(fallback)
			}
			t.Set(r, col, v)
		}
	}
}

// resolveCanonical ensures the canonical column exists, copying the first
// available alias when it doesn't. No-op when no alias is present either.
func resolveCanonical(t *Table, canonical string, aliases ...string) {
	if t.HasColumn(canonical) {
		return
	}
	for _, alias := range aliases {
		if t.HasColumn(alias) {
			t.CopyColumn(canonical, alias)
			return
		}
	}
}
