package grammar

import (
	"github.com/go-playground/validator/v10"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

// Event is one logged grammar error. Events are never updated.
type Event struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	SubjectID int       `json:"subject_id" db:"subject_id"`
	Date      core.Date `json:"date" db:"date"`
	ErrorCode string    `json:"error_code" db:"error_code"`
}

func (e Event) Stat() stats.GrammarEvent {
	return stats.GrammarEvent{StudentID: e.StudentID, Code: e.ErrorCode, Date: e.Date}
}

func Stats(events []Event) []stats.GrammarEvent {
	res := make([]stats.GrammarEvent, 0, len(events))
	for _, e := range events {
		res = append(res, e.Stat())
	}
	return res
}

// NewEvent contains information needed to log a grammar error. Date defaults to today.
type NewEvent struct {
	StudentID int       `json:"student_id" validate:"required,gt=0"`
	SubjectID int       `json:"subject_id" validate:"required,gt=0"`
	ErrorCode string    `json:"error_code" validate:"required,errcode"`
	Date      core.Date `json:"date"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.ErrorCode = core.CleanString(ne.ErrorCode)
	return validate.Struct(ne)
}

type QueryFilter struct {
	StudentID int `query:"student_id"`
}

// AnalyticsFilter is the query form of stats.GrammarFilter.
type AnalyticsFilter struct {
	StudentID int    `query:"student_id"`
	Window    string `query:"window"`
}

func (af AnalyticsFilter) Parse() (stats.GrammarFilter, error) {
	w, err := stats.ParseWindow(af.Window)
	if err != nil {
		return stats.GrammarFilter{}, core.NewValidationError(err, core.FieldError{
			Field: "window",
			Error: "must be one of all, week, month or term",
		})
	}
	return stats.GrammarFilter{StudentID: af.StudentID, Window: w}, nil
}
