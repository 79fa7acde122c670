package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"Hotel Name,Price,Overall Rating",
		"Marina View,AED 450,4.8",
		"Old Town Inn,,3.9",
		"Short Row,120", // ragged: missing trailing cell
		"",
	}, "\n")

	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if tbl.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.NumRows())
	}
	if got := tbl.Columns(); got[0] != "Hotel Name" {
		t.Errorf("raw header preserved, got %q", got[0])
	}
	if v := tbl.At(0, "Price"); v.Str != "AED 450" {
		t.Errorf("cell = %v, want raw string", v)
	}
	if v := tbl.At(1, "Price"); !v.IsMissing() {
		t.Errorf("empty cell = %v, want missing", v)
	}
	if v := tbl.At(2, "Overall Rating"); !v.IsMissing() {
		t.Errorf("ragged trailing cell = %v, want missing", v)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV on empty input: %v", err)
	}
	if tbl.NumRows() != 0 || tbl.NumCols() != 0 {
		t.Errorf("expected empty table, got %dx%d", tbl.NumRows(), tbl.NumCols())
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]string{
		{"hotel_name", "price_per_night", "location"},
		{"Marina View", "450", "Dubai Marina"},
		{"Old Town Inn", "180", "Deira"},
	}
	for r, row := range rows {
		for c, cell := range row {
			name, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	tbl, err := ReadXLSX(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.NumRows())
	}
	if v := tbl.At(1, "price_per_night"); v.Str != "180" {
		t.Errorf("cell = %v, want \"180\"", v)
	}
}

func TestTableJSONRoundTrip(t *testing.T) {
	src := SampleTable()

	data, err := src.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Table
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !src.Equal(&back) {
		t.Fatal("table changed across JSON round-trip")
	}
}
