// Package exportsvc writes tabular exports (CSV, XLSX) and reads student imports.
package exportsvc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	// sheet is the worksheet every XLSX export is written to.
	sheet = "Sheet1"
)

var ErrUnknownFormat = errors.New("format must be csv or xlsx")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", ErrUnknownFormat
	}
}

// FormatOf guesses the format of a file from its extension.
func FormatOf(filename string) (Format, error) {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return "", ErrUnknownFormat
	}
	return ParseFormat(filename[dot+1:])
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename appends the format's extension to name.
func (f Format) Filename(name string) string {
	return name + "." + string(f)
}

// Table is a header row followed by records.
type Table struct {
	Header []string
	Rows   [][]interface{}
}

// Write encodes t in the given format.
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, t)
	case FormatXLSX:
		return writeXLSX(w, t)
	default:
		return ErrUnknownFormat
	}
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, fmt.Sprint(cell))
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

func writeXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]interface{}, 0, len(t.Header))
	for _, h := range t.Header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "writing xlsx header")
	}
	if len(t.Header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return errors.Wrap(err, "creating header style")
		}
		last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err != nil {
			return errors.Wrap(err, "locating header")
		}
		if err = f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return errors.Wrap(err, "styling header")
		}
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "locating row")
		}
		row := row
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing xlsx row %d", i+2)
		}
	}
	return errors.Wrap(f.Write(w), "writing xlsx")
}
