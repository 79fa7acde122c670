package dataset

import (
	"math"
	"strconv"
	"testing"
)

func TestDropDuplicates(t *testing.T) {
	tbl := NewTable([]string{"hotel_name", "price_per_night"})
	tbl.AppendRow([]Value{String("A"), Number(100)})
	tbl.AppendRow([]Value{String("A"), Number(100)})
	tbl.AppendRow([]Value{String("A"), Number(101)})

	var diag Diagnostics
	out := dropDuplicates(tbl, &diag)

	if out.NumRows() != 2 {
		t.Fatalf("rows after dedupe = %d, want 2", out.NumRows())
	}
	if diag.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", diag.DuplicatesRemoved)
	}
}

func TestDropMissingCritical(t *testing.T) {
	tbl := NewTable([]string{"hotel_name", "price_per_night", "location"})
	tbl.AppendRow([]Value{String("A"), Number(100), String("Deira")})
	tbl.AppendRow([]Value{Missing(), Number(90), String("JBR")})
	tbl.AppendRow([]Value{String("C"), Missing(), Missing()})

	var diag Diagnostics
	out := dropMissingCritical(tbl, &diag)

	if out.NumRows() != 1 {
		t.Fatalf("rows after critical drop = %d, want 1", out.NumRows())
	}
	if got := out.At(0, "hotel_name"); got.Str != "A" {
		t.Errorf("surviving row = %v, want A", got)
	}
	if diag.MissingCriticalDropped != 2 {
		t.Errorf("MissingCriticalDropped = %d, want 2", diag.MissingCriticalDropped)
	}
}

func TestDropMissingCriticalNoopWithoutColumns(t *testing.T) {
	tbl := NewTable([]string{"location"})
	tbl.AppendRow([]Value{Missing()})

	var diag Diagnostics
	out := dropMissingCritical(tbl, &diag)
	if out.NumRows() != 1 {
		t.Errorf("rows = %d, want 1 (no critical columns present)", out.NumRows())
	}
}

func TestTrimPriceOutliers(t *testing.T) {
	tbl := NewTable([]string{"price_per_night"})
	for i := 0; i < 200; i++ {
		tbl.AppendRow([]Value{Number(100)})
	}
	tbl.AppendRow([]Value{Number(50000)}) // extreme outlier

	var diag Diagnostics
	out := trimPriceOutliers(tbl, &diag)

	if out.NumRows() != 200 {
		t.Fatalf("rows after trim = %d, want 200", out.NumRows())
	}
	if diag.OutliersRemoved != 1 {
		t.Errorf("OutliersRemoved = %d, want 1", diag.OutliersRemoved)
	}
	for r := 0; r < out.NumRows(); r++ {
		if n, _ := out.At(r, "price_per_night").AsNumber(); n > diag.PriceCap {
			t.Errorf("row %d price %v exceeds batch cap %v", r, n, diag.PriceCap)
		}
	}
}

func TestQuantileLinearInterpolation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"median of even set", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"single value", []float64{7}, 0.995, 7},
		{"interpolated upper tail", []float64{0, 100}, 0.995, 99.5},
		{"max", []float64{1, 2, 3}, 1.0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantile(tt.values, tt.q)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}

func TestFinalizeOrderDedupBeforePercentile(t *testing.T) {
	// 200 copies of an extreme row must not drag the percentile up: after
	// dedupe only one extreme row remains and the trim removes it.
	tbl := NewTable([]string{"hotel_name", "price_per_night"})
	for i := 0; i < 300; i++ {
		tbl.AppendRow([]Value{String("normal-" + strconv.Itoa(i)), Number(100)})
	}
	for i := 0; i < 200; i++ {
		tbl.AppendRow([]Value{String("spike"), Number(90000)})
	}

	var diag Diagnostics
	out := finalize(tbl, &diag)

	if diag.DuplicatesRemoved != 199 {
		t.Errorf("DuplicatesRemoved = %d, want 199", diag.DuplicatesRemoved)
	}
	if diag.OutliersRemoved != 1 {
		t.Errorf("OutliersRemoved = %d, want 1 (deduped spike)", diag.OutliersRemoved)
	}
	if out.NumRows() != 300 {
		t.Errorf("rows out = %d, want 300", out.NumRows())
	}
}
