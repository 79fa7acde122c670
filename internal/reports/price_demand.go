/**
 * @description
 * Price & demand report: overall price distribution, grouped price stats by
 * hotel type, room type, and price segment, and the price/demand correlation.
 */

package reports

import "github.com/staylens/backend/internal/dataset"

type GroupStat struct {
	Label         string   `json:"label"`
	Count         int      `json:"count"`
	AvgPrice      *float64 `json:"avg_price,omitempty"`
	MedianPrice   *float64 `json:"median_price,omitempty"`
	AvgRating     *float64 `json:"avg_rating,omitempty"`
	AvgReviews    *float64 `json:"avg_reviews,omitempty"`
	AvgValueScore *float64 `json:"avg_value_score,omitempty"`
}

type PriceDemandReport struct {
	PriceDistribution *Summary `json:"price_distribution,omitempty"`

	ByHotelType     []GroupStat `json:"by_hotel_type,omitempty"`
	ByRoomType      []GroupStat `json:"by_room_type,omitempty"`
	ByPriceCategory []GroupStat `json:"by_price_category,omitempty"`

	PriceDemandCorrelation *float64 `json:"price_demand_correlation,omitempty"`
}

func PriceDemand(t *dataset.Table) PriceDemandReport {
	rep := PriceDemandReport{
		PriceDistribution: summarize(numericColumn(t, "price_per_night")),
		ByHotelType:       groupStats(t, "hotel_type"),
		ByRoomType:        groupStats(t, "room_type"),
		ByPriceCategory:   groupStats(t, "price_category"),
	}

	if xs, ys := pairedColumns(t, "price_per_night", "demand_score"); len(xs) >= 2 {
		corr := round2(pearson(xs, ys))
		rep.PriceDemandCorrelation = &corr
	}
	return rep
}

// groupStats builds per-group averages sorted by group size, largest first.
// Groups come from the label column; each metric needs its own column too.
func groupStats(t *dataset.Table, groupCol string) []GroupStat {
	counts := valueCounts(t, groupCol)
	if len(counts) == 0 {
		return nil
	}
	prices := groupNumeric(t, groupCol, "price_per_night")
	ratings := groupNumeric(t, groupCol, "overall_rating")
	reviews := groupNumeric(t, groupCol, "reviews_count")
	scores := groupNumeric(t, groupCol, "value_score")

	out := make([]GroupStat, 0, len(counts))
	for _, entry := range counts {
		stat := GroupStat{Label: entry.Label, Count: entry.Count}
		if vals := prices[entry.Label]; len(vals) > 0 {
			avg := round2(mean(vals))
			med := round2(quantileOf(vals, 0.5))
			stat.AvgPrice = &avg
			stat.MedianPrice = &med
		}
		if vals := ratings[entry.Label]; len(vals) > 0 {
			avg := round2(mean(vals))
			stat.AvgRating = &avg
		}
		if vals := reviews[entry.Label]; len(vals) > 0 {
			avg := round2(mean(vals))
			stat.AvgReviews = &avg
		}
		if vals := scores[entry.Label]; len(vals) > 0 {
			avg := round2(mean(vals))
			stat.AvgValueScore = &avg
		}
		out = append(out, stat)
	}
	return out
}
