/**
 * @description
 * Seasonality report: availability and minimum-stay distributions, and
 * review activity tallied by calendar month from the last_review dates.
 */

package reports

import (
	"time"

	"github.com/staylens/backend/internal/dataset"
)

type MonthActivity struct {
	Month   string `json:"month"`
	Reviews int    `json:"reviews"`
}

type SeasonalityReport struct {
	Availability  *Summary `json:"availability,omitempty"`
	MinimumNights *Summary `json:"minimum_nights,omitempty"`

	// ReviewsByMonth counts listings whose most recent review fell in each
	// month, January through December, regardless of year.
	ReviewsByMonth []MonthActivity `json:"reviews_by_month,omitempty"`
}

func Seasonality(t *dataset.Table) SeasonalityReport {
	rep := SeasonalityReport{
		Availability:  summarize(numericColumn(t, "availability")),
		MinimumNights: summarize(numericColumn(t, "minimum_nights")),
	}

	if t.HasColumn("last_review") {
		var byMonth [12]int
		total := 0
		for r := 0; r < t.NumRows(); r++ {
			v := t.At(r, "last_review")
			if v.Kind != dataset.KindTime {
				continue
			}
			byMonth[v.Time.Month()-1]++
			total++
		}
		if total > 0 {
			rep.ReviewsByMonth = make([]MonthActivity, 0, 12)
			for m := time.January; m <= time.December; m++ {
				rep.ReviewsByMonth = append(rep.ReviewsByMonth, MonthActivity{
					Month:   m.String(),
					Reviews: byMonth[m-1],
				})
			}
		}
	}
	return rep
}
