package dataset

import "testing"

func TestStandardizeColumns(t *testing.T) {
	raw := NewTable([]string{" Hotel Name ", "Price Per Night", "overall_rating", "GPS Latitude"})
	raw.AppendRow([]Value{String("A"), String("100"), String("4.5"), String("25.1")})

	StandardizeColumns(raw)

	want := []string{"hotel_name", "price_per_night", "overall_rating", "gps_latitude"}
	got := raw.Columns()
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
	// Content passes through untouched.
	if v := raw.At(0, "hotel_name"); v.Str != "A" {
		t.Errorf("cell content changed: %v", v)
	}
}

func TestStandardizeColumnsIsIdempotent(t *testing.T) {
	raw := NewTable([]string{"hotel_name", "price_per_night"})
	raw.AppendRow([]Value{String("A"), String("1")})

	StandardizeColumns(raw)
	first := raw.Columns()
	StandardizeColumns(raw)
	second := raw.Columns()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("column %d changed on second pass: %q -> %q", i, first[i], second[i])
		}
	}
}
