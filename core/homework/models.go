package homework

import (
	"github.com/go-playground/validator/v10"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

// MaxGridDays caps the number of days a single grid request may span.
const MaxGridDays = 366

// Entry is a recorded homework status. A (student, date) pair without an Entry is unset.
type Entry struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	Date      core.Date `json:"date" db:"date"`
	Status    bool      `json:"status" db:"status"`
}

func (e Entry) Observation() stats.HomeworkObservation {
	return stats.HomeworkObservation{Date: e.Date, Completed: e.Status}
}

// Observations groups entries by student.
func Observations(entries []Entry) map[int][]stats.HomeworkObservation {
	obs := make(map[int][]stats.HomeworkObservation)
	for _, e := range entries {
		obs[e.StudentID] = append(obs[e.StudentID], e.Observation())
	}
	return obs
}

type EntryInput struct {
	StudentID int       `json:"student_id" validate:"required,gt=0"`
	Date      core.Date `json:"date" validate:"required"`
	Status    *bool     `json:"status" validate:"required"`
}

// Submission is a bulk upsert of homework statuses.
type Submission struct {
	Entries []EntryInput `json:"entries" validate:"required,min=1,dive"`
}

func (s *Submission) Validate(validate *validator.Validate) error {
	return validate.Struct(s)
}

// CellRef addresses one student/day cell.
type CellRef struct {
	StudentID int       `json:"student_id" validate:"required,gt=0"`
	Date      core.Date `json:"date" validate:"required"`
}

func (c *CellRef) Validate(validate *validator.Validate) error {
	return validate.Struct(c)
}

type QueryFilter struct {
	StudentID int       `query:"student_id"`
	StartDate core.Date `query:"start_date"`
	EndDate   core.Date `query:"end_date"`
}

// DateRange is an inclusive range of days.
type DateRange struct {
	StartDate core.Date `query:"start_date"`
	EndDate   core.Date `query:"end_date"`
}

func (r DateRange) Validate() error {
	var flds []core.FieldError
	if r.StartDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "start_date", Error: "this field is required"})
	}
	if r.EndDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "end_date", Error: "this field is required"})
	}
	if flds != nil {
		return core.NewValidationError(ErrInvalidRange, flds...)
	}
	if r.EndDate.Before(r.StartDate) {
		return core.NewValidationError(ErrInvalidRange, core.FieldError{Field: "end_date", Error: "must not be before start_date"})
	}
	if core.DaysBetween(r.StartDate, r.EndDate)+1 > MaxGridDays {
		return core.NewValidationError(ErrInvalidRange, core.FieldError{Field: "end_date", Error: "range is too long"})
	}
	return nil
}

func (r DateRange) Dates() []core.Date {
	return core.DateRange(r.StartDate, r.EndDate)
}
