/**
 * @description
 * Raw table readers for file-backed dataset sources. Delimited text comes in
 * through encoding/csv; spreadsheets through excelize. Both tolerate ragged
 * rows and unconstrained column naming — cell cleanup belongs to the
 * pipeline, not the reader.
 *
 * @dependencies
 * - standard "encoding/csv"
 * - github.com/xuri/excelize/v2
 */

package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV parses delimited text into a raw table. The first record supplies
// column labels; every cell becomes a String value, empty cells Missing.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	t := NewTable(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		t.AppendRow(cellsFromStrings(record, len(header)))
	}
	return t, nil
}

// ReadXLSX parses the first sheet of a spreadsheet into a raw table,
// first row as column labels.
func ReadXLSX(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return NewTable(nil), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return NewTable(nil), nil
	}

	t := NewTable(rows[0])
	for _, row := range rows[1:] {
		t.AppendRow(cellsFromStrings(row, len(rows[0])))
	}
	return t, nil
}

// LoadFile reads a bundled dataset file, dispatching on extension.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ReadXLSX(data)
	default:
		return ReadCSV(bytes.NewReader(data))
	}
}

// cellsFromStrings converts one raw record, padding to the table width.
func cellsFromStrings(record []string, width int) []Value {
	cells := make([]Value, width)
	for i := range cells {
		if i >= len(record) || strings.TrimSpace(record[i]) == "" {
			cells[i] = Missing()
			continue
		}
		cells[i] = String(record[i])
	}
	return cells
}
