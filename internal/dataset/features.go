/**
 * @description
 * Derived-feature computation: value score, demand score, and the ordered
 * price/rating/host categories. Each feature declares its required source
 * columns and is skipped silently when any of them is absent — the output
 * table simply lacks that column and the schema records the omission.
 *
 * @notes
 * - Buckets are right-open ([lo, hi)) with the final bucket closed at the
 *   top, so a 5.0 rating is still "Excellent" and a 0 price is "Budget".
 */

package dataset

import "math"

var (
	priceBuckets = bucketSpec{
		bounds: []float64{0, 200, 500, 1000, math.Inf(1)},
		labels: []string{"Budget", "Mid-Range", "Premium", "Luxury"},
	}
	ratingBuckets = bucketSpec{
		bounds: []float64{0, 3.5, 4.0, 4.5, 5.0},
		labels: []string{"Poor", "Good", "Very Good", "Excellent"},
	}
	hostBuckets = bucketSpec{
		bounds: []float64{0, 1, 5, 20, math.Inf(1)},
		labels: []string{"Individual", "Small Host", "Professional", "Enterprise"},
	}
)

type bucketSpec struct {
	bounds []float64
	labels []string
}

// assign places v into its right-open bucket. Values outside the boundary
// range report ok=false.
func (b bucketSpec) assign(v float64) (string, bool) {
	last := len(b.labels) - 1
	for i, label := range b.labels {
		lo, hi := b.bounds[i], b.bounds[i+1]
		if v >= lo && (v < hi || (i == last && v <= hi)) {
			return label, true
		}
	}
	return "", false
}

// engineerFeatures computes every derived column whose prerequisites
// resolved, updating the schema to reflect which ones were produced.
func engineerFeatures(t *Table, sch *Schema) {
	// value_score = rating / price * 100 when price > 0, else 0.
	// Division by zero is guarded explicitly; a missing rating propagates.
	if t.HasColumn("overall_rating") && t.HasColumn("price_per_night") {
		t.AddColumn("value_score", func(row int) Value {
			price, pok := t.At(row, "price_per_night").AsNumber()
			if !pok || price <= 0 {
				return Number(0)
			}
			rating, rok := t.At(row, "overall_rating").AsNumber()
			if !rok {
				return Missing()
			}
			return Number(rating / price * 100)
		})
		sch.HasValueScore = true
	}

	// demand_score = reviews / (365 - availability) for 0 < availability < 365.
	// Fully booked (365) and never booked (0) both fall back to the raw review
	// count — the source's declared policy, kept as-is.
	if t.HasColumn("reviews_count") && t.HasColumn("availability") {
		t.AddColumn("demand_score", func(row int) Value {
			reviews, _ := t.At(row, "reviews_count").AsNumber()
			avail, _ := t.At(row, "availability").AsNumber()
			if avail > 0 && avail < 365 {
				return Number(reviews / (365 - avail))
			}
			return Number(reviews)
		})
		sch.HasDemandScore = true
	}

	if t.HasColumn("price_per_night") {
		addBucketColumn(t, "price_category", "price_per_night", priceBuckets)
		sch.HasPriceCategory = true
	}

	if t.HasColumn("overall_rating") {
		addBucketColumn(t, "rating_category", "overall_rating", ratingBuckets)
		sch.HasRatingCategory = true
	}

	if t.HasColumn("host_listings_count") {
		addBucketColumn(t, "host_type", "host_listings_count", hostBuckets)
		sch.HasHostType = true
	}
}

// addBucketColumn appends a categorical column derived from a numeric source.
// Cells that don't coerce or fall outside the buckets stay Missing.
func addBucketColumn(t *Table, name, src string, spec bucketSpec) {
	t.AddColumn(name, func(row int) Value {
		n, ok := t.At(row, src).AsNumber()
		if !ok {
			return Missing()
		}
		label, ok := spec.assign(n)
		if !ok {
			return Missing()
		}
		return String(label)
	})
}
