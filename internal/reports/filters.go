/**
 * @description
 * Shared query filters for the report endpoints.
 * Every report page receives its own filtered copy of the cleaned table, so
 * aggregations in one page can never see rows another page excluded.
 *
 * @dependencies
 * - backend/internal/dataset
 */

package reports

import "github.com/staylens/backend/internal/dataset"

// Filters narrows the cleaned table before aggregation. Zero-valued fields
// are inactive. Bounds are inclusive.
type Filters struct {
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
}

// Apply returns a filtered copy of t. A filter on a column the table does
// not have is ignored; rows with a missing value in a filtered column are
// excluded by that filter.
func (f Filters) Apply(t *dataset.Table) *dataset.Table {
	if t == nil {
		return dataset.NewTable(nil)
	}
	priceActive := (f.PriceMin != nil || f.PriceMax != nil) && t.HasColumn("price_per_night")
	ratingActive := f.MinRating != nil && t.HasColumn("overall_rating")
	if !priceActive && !ratingActive {
		return t
	}
	return t.Filter(func(row int) bool {
		if priceActive {
			n, ok := t.At(row, "price_per_night").AsNumber()
			if !ok {
				return false
			}
			if f.PriceMin != nil && n < *f.PriceMin {
				return false
			}
			if f.PriceMax != nil && n > *f.PriceMax {
				return false
			}
		}
		if ratingActive {
			n, ok := t.At(row, "overall_rating").AsNumber()
			if !ok || n < *f.MinRating {
				return false
			}
		}
		return true
	})
}
