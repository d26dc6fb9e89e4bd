package exportsvc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/xuri/excelize/v2"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/student"
)

// student import columns, matched case-insensitively against the header row
const (
	colName      = "name"
	colClass     = "class"
	colDOB       = "dob"
	colAvatarURL = "avatar_url"
)

var requiredColumns = []string{colName, colClass, colDOB}

// RowError reports an unreadable import row. Row is 1-based and counts the header.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Cause() error {
	return e.Err
}

// ReadStudents decodes a student import. The first row is a header naming the columns
// name, class, dob (YYYY-MM-DD) and optionally avatar_url. Blank rows are skipped.
// When validate is set, every student is validated and the first invalid row is reported.
func ReadStudents(r io.Reader, format Format, validate *validator.Validate) ([]student.NewStudent, error) {
	rows, err := readRows(r, format)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("import file is empty")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[core.CleanString(h, true)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("missing %q column", name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return core.CleanString(row[i])
	}

	students := make([]student.NewStudent, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		ns := student.NewStudent{
			Name:  cell(row, colName),
			Class: cell(row, colClass),
		}
		if dob := cell(row, colDOB); dob != "" {
			if ns.DOB, err = core.ParseDate(dob); err != nil {
				return nil, &RowError{Row: i + 2, Err: errors.Errorf("invalid dob %q", dob)}
			}
		}
		if avatar := cell(row, colAvatarURL); avatar != "" {
			ns.AvatarURL = null.StringFrom(avatar)
		}
		if validate != nil {
			if err = ns.Validate(validate); err != nil {
				return nil, &RowError{Row: i + 2, Err: err}
			}
		}
		students = append(students, ns)
	}
	return students, nil
}

func readRows(r io.Reader, format Format) ([][]string, error) {
	switch format {
	case FormatCSV:
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		return rows, errors.Wrap(err, "reading csv")

	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "opening xlsx")
		}
		defer func() { _ = f.Close() }()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("xlsx has no sheet")
		}
		rows, err := f.GetRows(sheets[0])
		return rows, errors.Wrap(err, "reading xlsx rows")

	default:
		return nil, ErrUnknownFormat
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
