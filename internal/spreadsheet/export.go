package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx/v3"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Table is a header plus string rows, written as one sheet.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

func Write(w io.Writer, f Format, t Table) error {
	if f == FormatXLSX {
		return writeXLSX(w, t)
	}
	return writeCSV(w, t)
}

// Bytes renders t fully in memory, for uploads that need a length.
func Bytes(f Format, t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeXLSX(w io.Writer, t Table) error {
	file := xlsx.NewFile()

	name := t.Sheet
	if name == "" {
		name = "Sheet1"
	}
	sheet, err := file.AddSheet(name)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	addRow(sheet, t.Header)
	for _, r := range t.Rows {
		addRow(sheet, r)
	}

	return file.Write(w)
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

// Template is the CSV a user fills in for a bulk upload.
func Template() []byte {
	var buf bytes.Buffer
	_ = writeCSV(&buf, Table{
		Header: RequiredColumns,
		Rows:   [][]string{{"Tripod", "Manfrotto", "MT190", "Photography"}},
	})
	return buf.Bytes()
}
