/**
 * @description
 * Market overview report: headline totals, averages, and category
 * distributions over the filtered table, plus generated insight strings.
 */

package reports

import (
	"fmt"

	"github.com/staylens/backend/internal/dataset"
)

type OverviewReport struct {
	TotalListings   int      `json:"total_listings"`
	AveragePrice    *float64 `json:"average_price,omitempty"`
	MedianPrice     *float64 `json:"median_price,omitempty"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
	TotalReviews    *float64 `json:"total_reviews,omitempty"`
	AvgAvailability *float64 `json:"avg_availability,omitempty"`

	HotelTypes      []CountEntry `json:"hotel_types,omitempty"`
	PriceCategories []CountEntry `json:"price_categories,omitempty"`

	Insights []string `json:"insights"`
}

func Overview(t *dataset.Table) OverviewReport {
	rep := OverviewReport{TotalListings: t.NumRows(), Insights: []string{}}

	if prices := numericColumn(t, "price_per_night"); len(prices) > 0 {
		avg := round2(mean(prices))
		med := round2(quantileOf(prices, 0.5))
		rep.AveragePrice = &avg
		rep.MedianPrice = &med
	}
	if ratings := numericColumn(t, "overall_rating"); len(ratings) > 0 {
		avg := round2(mean(ratings))
		rep.AverageRating = &avg
	}
	if reviews := numericColumn(t, "reviews_count"); len(reviews) > 0 {
		var total float64
		for _, v := range reviews {
			total += v
		}
		rep.TotalReviews = &total
	}
	if avail := numericColumn(t, "availability"); len(avail) > 0 {
		avg := round2(mean(avail))
		rep.AvgAvailability = &avg
	}

	rep.HotelTypes = valueCounts(t, "hotel_type")
	rep.PriceCategories = valueCounts(t, "price_category")

	rep.Insights = overviewInsights(rep)
	return rep
}

// overviewInsights turns the headline numbers into short narrative lines.
func overviewInsights(rep OverviewReport) []string {
	insights := []string{
		fmt.Sprintf("The market contains %d listings after cleaning and filtering.", rep.TotalListings),
	}
	if rep.AveragePrice != nil && rep.MedianPrice != nil {
		insights = append(insights, fmt.Sprintf(
			"Average nightly price is %.2f with a median of %.2f.", *rep.AveragePrice, *rep.MedianPrice))
		if *rep.AveragePrice > *rep.MedianPrice*1.2 {
			insights = append(insights,
				"The average sits well above the median, so a luxury tail is pulling prices up.")
		}
	}
	if rep.AverageRating != nil {
		insights = append(insights, fmt.Sprintf("Guests rate the market %.2f out of 5 on average.", *rep.AverageRating))
	}
	if len(rep.HotelTypes) > 0 {
		top := rep.HotelTypes[0]
		insights = append(insights, fmt.Sprintf(
			"%s is the most common property type (%d listings).", top.Label, top.Count))
	}
	if len(rep.PriceCategories) > 0 {
		top := rep.PriceCategories[0]
		insights = append(insights, fmt.Sprintf(
			"Most listings fall in the %s price segment (%d listings).", top.Label, top.Count))
	}
	return insights
}
