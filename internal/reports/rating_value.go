/**
 * @description
 * Rating & value report: rating-segment distribution, the best
 * value-for-money listings, and "hidden gems" (highly rated listings priced
 * below the batch median).
 */

package reports

import (
	"sort"

	"github.com/staylens/backend/internal/dataset"
)

type ValueListing struct {
	HotelName  string   `json:"hotel_name"`
	Price      float64  `json:"price"`
	Rating     *float64 `json:"rating,omitempty"`
	ValueScore float64  `json:"value_score"`
}

type RatingValueReport struct {
	RatingCategories []CountEntry   `json:"rating_categories,omitempty"`
	TopValue         []ValueListing `json:"top_value,omitempty"`
	HiddenGems       []ValueListing `json:"hidden_gems,omitempty"`
}

const (
	topValueLimit   = 10
	hiddenGemRating = 4.5
)

func RatingValue(t *dataset.Table) RatingValueReport {
	rep := RatingValueReport{RatingCategories: valueCounts(t, "rating_category")}

	listings := valueListings(t)
	if len(listings) == 0 {
		return rep
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].ValueScore > listings[j].ValueScore
	})
	top := listings
	if len(top) > topValueLimit {
		top = top[:topValueLimit]
	}
	rep.TopValue = top

	prices := numericColumn(t, "price_per_night")
	if len(prices) == 0 {
		return rep
	}
	medianPrice := quantileOf(prices, 0.5)
	for _, l := range listings {
		if l.Rating != nil && *l.Rating >= hiddenGemRating && l.Price < medianPrice {
			rep.HiddenGems = append(rep.HiddenGems, l)
			if len(rep.HiddenGems) == topValueLimit {
				break
			}
		}
	}
	return rep
}

// valueListings extracts rows with a name, a price, and a value score.
func valueListings(t *dataset.Table) []ValueListing {
	if !t.HasColumn("hotel_name") || !t.HasColumn("price_per_night") || !t.HasColumn("value_score") {
		return nil
	}
	var out []ValueListing
	for r := 0; r < t.NumRows(); r++ {
		name, okName := t.At(r, "hotel_name").AsString()
		price, okPrice := t.At(r, "price_per_night").AsNumber()
		score, okScore := t.At(r, "value_score").AsNumber()
		if !okName || !okPrice || !okScore {
			continue
		}
		l := ValueListing{HotelName: name, Price: price, ValueScore: round2(score)}
		if rating, ok := t.At(r, "overall_rating").AsNumber(); ok {
			rt := rating
			l.Rating = &rt
		}
		out = append(out, l)
	}
	return out
}
