// Package spreadsheet reads bulk upload files and writes tabular exports.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx/v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, use .xlsx or .csv")
	ErrEmptyFile         = errors.New("file has no data rows")
)

// MissingColumnsError lists required headers absent from the file.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// Row is one equipment line of an upload. Line is the 1-based line number
// in the source file.
type Row struct {
	Line     int
	Name     string
	Brand    string
	Model    string
	Category string
}

// ParseEquipment reads an .xlsx (first sheet) or .csv upload. Every cell
// is taken as text; blank lines are skipped.
func ParseEquipment(filename string, r io.Reader) ([]Row, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	return fromRecords(records)
}

func readXLSX(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}

	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrEmptyFile
	}

	sheet := file.Sheets[0]
	records := make([][]string, 0, sheet.MaxRow)
	for i := 0; i < sheet.MaxRow; i++ {
		row, err := sheet.Row(i)
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", i+1, err)
		}

		cells := make([]string, sheet.MaxCol)
		for c := 0; c < sheet.MaxCol; c++ {
			cells[c] = row.GetCell(c).String()
		}
		records = append(records, cells)
	}
	return records, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func fromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	index := make(map[string]int)
	for i, h := range records[0] {
		if canonical, ok := aliases[normalizeHeader(h)]; ok {
			if _, dup := index[canonical]; !dup {
				index[canonical] = i
			}
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	cell := func(rec []string, col string) string {
		i := index[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for n, rec := range records[1:] {
		row := Row{
			Line:     n + 2,
			Name:     cell(rec, "name"),
			Brand:    cell(rec, "brand"),
			Model:    cell(rec, "model"),
			Category: cell(rec, "category"),
		}
		if row.Name == "" && row.Brand == "" && row.Model == "" && row.Category == "" {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}
