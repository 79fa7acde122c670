package dataset

import (
	"math"
	"testing"
)

func numericRow(price, rating, reviews, availability float64) *Table {
	t := NewTable([]string{"price_per_night", "overall_rating", "reviews_count", "availability"})
	t.AppendRow([]Value{Number(price), Number(rating), Number(reviews), Number(availability)})
	return t
}

func TestValueScore(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		rating float64
		want   float64
	}{
		{"normal", 200, 4.0, 2.0},
		{"zero price guards division", 0, 4.5, 0},
		{"expensive", 1000, 5.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := numericRow(tt.price, tt.rating, 10, 100)
			var sch Schema
			engineerFeatures(tbl, &sch)

			if !sch.HasValueScore {
				t.Fatal("value_score not produced")
			}
			got := tbl.At(0, "value_score")
			if math.Abs(got.Num-tt.want) > 1e-9 {
				t.Errorf("value_score = %v, want %v", got.Num, tt.want)
			}
			if math.IsInf(got.Num, 0) || math.IsNaN(got.Num) {
				t.Errorf("value_score must be finite, got %v", got.Num)
			}
		})
	}
}

func TestDemandScore(t *testing.T) {
	tests := []struct {
		name         string
		reviews      float64
		availability float64
		want         float64
	}{
		{"mid availability", 73, 292, 1.0},
		{"fully open falls back to raw reviews", 50, 365, 50},
		{"never available falls back to raw reviews", 50, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := numericRow(100, 4, tt.reviews, tt.availability)
			var sch Schema
			engineerFeatures(tbl, &sch)

			if !sch.HasDemandScore {
				t.Fatal("demand_score not produced")
			}
			got := tbl.At(0, "demand_score")
			if math.Abs(got.Num-tt.want) > 1e-9 {
				t.Errorf("demand_score = %v, want %v", got.Num, tt.want)
			}
		})
	}
}

func TestPriceCategoryBuckets(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "Budget"},
		{199.99, "Budget"},
		{200.01, "Mid-Range"},
		{499.99, "Mid-Range"},
		{500, "Premium"},
		{999.99, "Premium"},
		{1000, "Luxury"},
		{25000, "Luxury"},
	}

	for _, tt := range tests {
		got, ok := priceBuckets.assign(tt.price)
		if !ok {
			t.Errorf("price %v not bucketed", tt.price)
			continue
		}
		if got != tt.want {
			t.Errorf("price %v bucketed as %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestRatingCategoryBuckets(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "Poor"},
		{3.49, "Poor"},
		{3.5, "Good"},
		{3.99, "Good"},
		{4.0, "Very Good"},
		{4.5, "Excellent"},
		{5.0, "Excellent"},
	}

	for _, tt := range tests {
		got, ok := ratingBuckets.assign(tt.rating)
		if !ok {
			t.Errorf("rating %v not bucketed", tt.rating)
			continue
		}
		if got != tt.want {
			t.Errorf("rating %v bucketed as %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestHostTypeOnlyWithHostListings(t *testing.T) {
	tbl := numericRow(100, 4, 10, 100)
	var sch Schema
	engineerFeatures(tbl, &sch)
	if sch.HasHostType || tbl.HasColumn("host_type") {
		t.Error("host_type produced without host_listings_count column")
	}

	withHost := NewTable([]string{"host_listings_count"})
	withHost.AppendRow([]Value{Number(0)})
	withHost.AppendRow([]Value{Number(3)})
	withHost.AppendRow([]Value{Number(12)})
	withHost.AppendRow([]Value{Number(40)})

	var sch2 Schema
	engineerFeatures(withHost, &sch2)
	if !sch2.HasHostType {
		t.Fatal("host_type not produced")
	}
	wants := []string{"Individual", "Small Host", "Professional", "Enterprise"}
	for i, want := range wants {
		if got := withHost.At(i, "host_type"); got.Str != want {
			t.Errorf("row %d host_type = %q, want %q", i, got.Str, want)
		}
	}
}

func TestFeaturesSkippedWithoutSources(t *testing.T) {
	tbl := NewTable([]string{"hotel_name"})
	tbl.AppendRow([]Value{String("A")})

	var sch Schema
	engineerFeatures(tbl, &sch)

	for _, col := range []string{"value_score", "demand_score", "price_category", "rating_category", "host_type"} {
		if tbl.HasColumn(col) {
			t.Errorf("feature %q produced without its source columns", col)
		}
	}
}
