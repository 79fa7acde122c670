package reports

import (
	"math"
	"testing"
	"time"

	"github.com/staylens/backend/internal/dataset"
)

func reportTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl := dataset.NewTable([]string{
		"hotel_name", "hotel_type", "room_type", "location", "host_name",
		"host_type", "price_category", "rating_category",
		"price_per_night", "overall_rating", "reviews_count", "availability",
		"minimum_nights", "latitude", "longitude", "value_score", "demand_score",
		"wifi", "pool", "last_review",
	})
	type row struct {
		name, htype, rtype, loc, host, hostType, priceCat, ratingCat string
		price, rating, reviews, avail, minN, lat, lon, score, demand float64
		wifi, pool                                                   float64
		review                                                       time.Time
	}
	rows := []row{
		{"Marina One", "Hotel", "Entire Place", "Marina", "Aisha", "Professional", "Mid-Range", "Excellent",
			300, 4.8, 120, 200, 2, 25.08, 55.14, 1.6, 0.73, 1, 1, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"Marina Two", "Hotel", "Entire Place", "Marina", "Aisha", "Professional", "Mid-Range", "Very Good",
			250, 4.2, 80, 180, 1, 25.09, 55.15, 1.68, 0.43, 1, 0, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)},
		{"Deira Budget", "Apartment", "Private Room", "Deira", "Omar", "Individual", "Budget", "Good",
			120, 3.9, 40, 300, 1, 25.27, 55.31, 3.25, 0.62, 0, 0, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
		{"Palm Luxe", "Resort", "Entire Place", "Palm Jumeirah", "Crown Stays", "Enterprise", "Luxury", "Excellent",
			1200, 4.9, 400, 100, 3, 25.11, 55.13, 0.41, 1.51, 1, 1, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"Old Town Gem", "Apartment", "Private Room", "Deira", "Omar", "Individual", "Budget", "Excellent",
			90, 4.7, 60, 250, 1, 25.26, 55.30, 5.22, 0.52, 1, 0, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range rows {
		tbl.AppendRow([]dataset.Value{
			dataset.String(r.name), dataset.String(r.htype), dataset.String(r.rtype),
			dataset.String(r.loc), dataset.String(r.host), dataset.String(r.hostType),
			dataset.String(r.priceCat), dataset.String(r.ratingCat),
			dataset.Number(r.price), dataset.Number(r.rating), dataset.Number(r.reviews),
			dataset.Number(r.avail), dataset.Number(r.minN), dataset.Number(r.lat),
			dataset.Number(r.lon), dataset.Number(r.score), dataset.Number(r.demand),
			dataset.Number(r.wifi), dataset.Number(r.pool), dataset.Timestamp(r.review),
		})
	}
	return tbl
}

func floatPtr(v float64) *float64 { return &v }

func TestFiltersApply(t *testing.T) {
	tbl := reportTable(t)

	filtered := Filters{PriceMin: floatPtr(100), PriceMax: floatPtr(400)}.Apply(tbl)
	if got := filtered.NumRows(); got != 3 {
		t.Fatalf("expected 3 rows in [100,400], got %d", got)
	}

	filtered = Filters{MinRating: floatPtr(4.5)}.Apply(tbl)
	if got := filtered.NumRows(); got != 3 {
		t.Fatalf("expected 3 rows rated >= 4.5, got %d", got)
	}

	filtered = Filters{PriceMax: floatPtr(400), MinRating: floatPtr(4.5)}.Apply(tbl)
	if got := filtered.NumRows(); got != 2 {
		t.Fatalf("expected 2 rows under both filters, got %d", got)
	}
}

func TestFiltersNoOpWithoutBounds(t *testing.T) {
	tbl := reportTable(t)
	if got := (Filters{}).Apply(tbl); got != tbl {
		t.Fatal("empty filters should return the same table")
	}
}

func TestFiltersIgnoreAbsentColumns(t *testing.T) {
	tbl := dataset.NewTable([]string{"hotel_name"})
	tbl.AppendRow([]dataset.Value{dataset.String("A")})

	filtered := Filters{PriceMin: floatPtr(100)}.Apply(tbl)
	if got := filtered.NumRows(); got != 1 {
		t.Fatalf("filter on missing column should be ignored, got %d rows", got)
	}
}

func TestOverview(t *testing.T) {
	rep := Overview(reportTable(t))

	if rep.TotalListings != 5 {
		t.Fatalf("expected 5 listings, got %d", rep.TotalListings)
	}
	if rep.AveragePrice == nil || math.Abs(*rep.AveragePrice-392) > 0.01 {
		t.Fatalf("unexpected average price: %v", rep.AveragePrice)
	}
	if rep.MedianPrice == nil || *rep.MedianPrice != 250 {
		t.Fatalf("unexpected median price: %v", rep.MedianPrice)
	}
	if rep.TotalReviews == nil || *rep.TotalReviews != 700 {
		t.Fatalf("unexpected total reviews: %v", rep.TotalReviews)
	}
	if len(rep.HotelTypes) == 0 || rep.HotelTypes[0].Label != "Apartment" && rep.HotelTypes[0].Label != "Hotel" {
		t.Fatalf("unexpected hotel type counts: %+v", rep.HotelTypes)
	}
	if len(rep.Insights) == 0 {
		t.Fatal("expected generated insights")
	}
}

func TestOverviewEmptyTable(t *testing.T) {
	rep := Overview(dataset.NewTable(nil))
	if rep.TotalListings != 0 {
		t.Fatalf("expected 0 listings, got %d", rep.TotalListings)
	}
	if rep.AveragePrice != nil {
		t.Fatal("expected no average price for empty table")
	}
	if len(rep.Insights) == 0 {
		t.Fatal("expected at least the headline insight")
	}
}

func TestPriceDemand(t *testing.T) {
	rep := PriceDemand(reportTable(t))

	if rep.PriceDistribution == nil || rep.PriceDistribution.Count != 5 {
		t.Fatalf("unexpected price distribution: %+v", rep.PriceDistribution)
	}
	if rep.PriceDistribution.Min != 90 || rep.PriceDistribution.Max != 1200 {
		t.Fatalf("unexpected price range: %+v", rep.PriceDistribution)
	}
	if len(rep.ByHotelType) != 3 {
		t.Fatalf("expected 3 hotel type groups, got %d", len(rep.ByHotelType))
	}
	if rep.PriceDemandCorrelation == nil {
		t.Fatal("expected a price/demand correlation")
	}
	if *rep.PriceDemandCorrelation < -1 || *rep.PriceDemandCorrelation > 1 {
		t.Fatalf("correlation out of range: %f", *rep.PriceDemandCorrelation)
	}
}

func TestGroupStatsOrderAndAverages(t *testing.T) {
	stats := groupStats(reportTable(t), "location")

	if len(stats) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(stats))
	}
	// Deira and Marina tie at 2, alphabetical tie-break puts Deira first.
	if stats[0].Label != "Deira" || stats[0].Count != 2 {
		t.Fatalf("unexpected first group: %+v", stats[0])
	}
	if stats[0].AvgPrice == nil || *stats[0].AvgPrice != 105 {
		t.Fatalf("unexpected Deira avg price: %v", stats[0].AvgPrice)
	}
}

func TestGeographical(t *testing.T) {
	rep := Geographical(reportTable(t))

	if len(rep.TopLocations) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(rep.TopLocations))
	}
	if rep.Bounds == nil {
		t.Fatal("expected coordinate bounds")
	}
	if rep.Bounds.MinLatitude != 25.08 || rep.Bounds.MaxLongitude != 55.31 {
		t.Fatalf("unexpected bounds: %+v", rep.Bounds)
	}
}

func TestRoomsAmenities(t *testing.T) {
	rep := RoomsAmenities(reportTable(t))

	if len(rep.RoomTypes) != 2 {
		t.Fatalf("expected 2 room types, got %d", len(rep.RoomTypes))
	}
	if len(rep.Amenities) != 2 {
		t.Fatalf("expected wifi and pool entries, got %d", len(rep.Amenities))
	}

	var wifi *AmenityPremium
	for i := range rep.Amenities {
		if rep.Amenities[i].Amenity == "wifi" {
			wifi = &rep.Amenities[i]
		}
	}
	if wifi == nil {
		t.Fatal("missing wifi premium entry")
	}
	if wifi.WithCount != 4 || wifi.WithoutCount != 1 {
		t.Fatalf("unexpected wifi counts: %+v", wifi)
	}
	// with: (300+250+1200+90)/4 = 460; without: 120.
	if wifi.Premium == nil || *wifi.Premium != 340 {
		t.Fatalf("unexpected wifi premium: %v", wifi.Premium)
	}
}

func TestHosts(t *testing.T) {
	rep := Hosts(reportTable(t))

	if len(rep.HostTypes) != 3 {
		t.Fatalf("expected 3 host types, got %d", len(rep.HostTypes))
	}
	if len(rep.TopHosts) != 3 {
		t.Fatalf("expected 3 hosts, got %d", len(rep.TopHosts))
	}
	// Aisha and Omar tie at 2 listings; alphabetical tie-break.
	if rep.TopHosts[0].HostName != "Aisha" || rep.TopHosts[0].Listings != 2 {
		t.Fatalf("unexpected top host: %+v", rep.TopHosts[0])
	}
	if rep.TopHosts[0].AvgPrice == nil || *rep.TopHosts[0].AvgPrice != 275 {
		t.Fatalf("unexpected top host avg price: %v", rep.TopHosts[0].AvgPrice)
	}
}

func TestSeasonality(t *testing.T) {
	rep := Seasonality(reportTable(t))

	if rep.Availability == nil || rep.Availability.Count != 5 {
		t.Fatalf("unexpected availability summary: %+v", rep.Availability)
	}
	if rep.MinimumNights == nil || rep.MinimumNights.Max != 3 {
		t.Fatalf("unexpected minimum nights summary: %+v", rep.MinimumNights)
	}
	if len(rep.ReviewsByMonth) != 12 {
		t.Fatalf("expected 12 months, got %d", len(rep.ReviewsByMonth))
	}
	byMonth := map[string]int{}
	for _, m := range rep.ReviewsByMonth {
		byMonth[m.Month] = m.Reviews
	}
	if byMonth["January"] != 2 || byMonth["June"] != 2 || byMonth["December"] != 1 {
		t.Fatalf("unexpected month tallies: %+v", byMonth)
	}
	if byMonth["March"] != 0 {
		t.Fatalf("expected zero March reviews, got %d", byMonth["March"])
	}
}

func TestRatingValue(t *testing.T) {
	rep := RatingValue(reportTable(t))

	if len(rep.RatingCategories) == 0 {
		t.Fatal("expected rating category counts")
	}
	if len(rep.TopValue) != 5 {
		t.Fatalf("expected 5 value listings, got %d", len(rep.TopValue))
	}
	if rep.TopValue[0].HotelName != "Old Town Gem" {
		t.Fatalf("unexpected best value listing: %+v", rep.TopValue[0])
	}
	// Median price is 250; Old Town Gem (90, 4.7) is the only hidden gem.
	if len(rep.HiddenGems) != 1 || rep.HiddenGems[0].HotelName != "Old Town Gem" {
		t.Fatalf("unexpected hidden gems: %+v", rep.HiddenGems)
	}
}

func TestReportsTolerateSparseTable(t *testing.T) {
	tbl := dataset.NewTable([]string{"hotel_name"})
	tbl.AppendRow([]dataset.Value{dataset.String("Lonely")})

	if rep := PriceDemand(tbl); rep.PriceDistribution != nil {
		t.Fatal("expected no price distribution without a price column")
	}
	if rep := Geographical(tbl); rep.Bounds != nil {
		t.Fatal("expected no bounds without coordinates")
	}
	if rep := RoomsAmenities(tbl); len(rep.Amenities) != 0 {
		t.Fatal("expected no amenity entries without flag columns")
	}
	if rep := Seasonality(tbl); rep.Availability != nil || len(rep.ReviewsByMonth) != 0 {
		t.Fatal("expected empty seasonality report")
	}
	if rep := RatingValue(tbl); len(rep.TopValue) != 0 {
		t.Fatal("expected no value listings without scores")
	}
}

func TestStatHelpers(t *testing.T) {
	if got := mean([]float64{1, 2, 3}); got != 2 {
		t.Fatalf("mean = %f", got)
	}
	if got := std([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(got-2.138) > 0.001 {
		t.Fatalf("std = %f", got)
	}
	if got := quantileOf([]float64{3, 1, 2}, 0.5); got != 2 {
		t.Fatalf("median = %f", got)
	}
	if got := pearson([]float64{1, 2, 3}, []float64{2, 4, 6}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("pearson = %f", got)
	}
	if got := pearson([]float64{1, 1, 1}, []float64{2, 4, 6}); got != 0 {
		t.Fatalf("pearson with zero variance = %f", got)
	}
}
