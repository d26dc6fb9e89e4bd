package homework

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

func TestDateRange_Validate(t *testing.T) {
	d := core.MustParseDate

	tests := []struct {
		name      string
		r         DateRange
		wantField string
	}{
		{name: "single day", r: DateRange{StartDate: d("2024-03-04"), EndDate: d("2024-03-04")}},
		{name: "full year", r: DateRange{StartDate: d("2024-01-01"), EndDate: d("2024-12-31")}},
		{name: "missing start", r: DateRange{EndDate: d("2024-03-04")}, wantField: "start_date"},
		{name: "reversed", r: DateRange{StartDate: d("2024-03-05"), EndDate: d("2024-03-04")}, wantField: "end_date"},
		{name: "too long", r: DateRange{StartDate: d("2023-01-01"), EndDate: d("2024-03-04")}, wantField: "end_date"},
		{name: "one day too long", r: DateRange{StartDate: d("2024-01-01"), EndDate: d("2025-01-01")}, wantField: "end_date"},
		{name: "widest dates", r: DateRange{StartDate: d("0001-01-01"), EndDate: d("9999-12-31")}, wantField: "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if assert.True(t, ok) {
				assert.Equal(t, ErrInvalidRange, vErr.Err)
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
			}
		})
	}
}

func TestSubmission_Validate(t *testing.T) {
	validate, _ := core.NewValidator()
	done := true

	assert.NoError(t, (&Submission{Entries: []EntryInput{
		{StudentID: 1, Date: core.MustParseDate("2024-03-04"), Status: &done},
	}}).Validate(validate))

	err := (&Submission{Entries: []EntryInput{
		{StudentID: 1, Date: core.MustParseDate("2024-03-04"), Status: &done},
		{StudentID: 2, Date: core.MustParseDate("2024-03-04")},
	}}).Validate(validate)
	var vErrs validator.ValidationErrors
	if assert.True(t, errors.As(err, &vErrs)) && assert.Len(t, vErrs, 1) {
		assert.Equal(t, "status", vErrs[0].Field())
	}

	assert.Error(t, (&Submission{}).Validate(validate))
}

func TestObservations(t *testing.T) {
	d := core.MustParseDate("2024-03-04")
	got := Observations([]Entry{
		{StudentID: 1, Date: d, Status: true},
		{StudentID: 2, Date: d, Status: false},
		{StudentID: 1, Date: d.AddDays(1), Status: false},
	})
	assert.Equal(t, map[int][]stats.HomeworkObservation{
		1: {{Date: d, Completed: true}, {Date: d.AddDays(1), Completed: false}},
		2: {{Date: d, Completed: false}},
	}, got)
}
