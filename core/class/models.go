package class

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/jamespares/chinaprof/core"
)

type Class struct {
	ID          int         `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description null.String `json:"description" db:"description"`
	YearLevel   null.Int    `json:"year_level" db:"year_level"`
	TeacherID   null.String `json:"teacher_id" db:"teacher_id"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name        string      `json:"name" validate:"required"`
	Description null.String `json:"description"`
	YearLevel   null.Int    `json:"year_level" validate:"omitempty,gte=1,lte=12"`
	TeacherID   null.String `json:"teacher_id"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description.String = core.CleanString(nc.Description.String)
	nc.Description.Valid = nc.Description.String != ""
	return validate.Struct(nc)
}

// UpdateClass defines what information may be provided to modify an existing Class.
type UpdateClass struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	YearLevel   *int    `json:"year_level" validate:"omitempty,gte=1,lte=12"`
	TeacherID   *string `json:"teacher_id"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	if uc.Name != nil {
		*uc.Name = core.CleanString(*uc.Name)
	}
	if uc.Description != nil {
		*uc.Description = core.CleanString(*uc.Description)
	}
	return validate.Struct(uc)
}

func (uc UpdateClass) apply(orig Class) Class {
	if uc.Name != nil {
		orig.Name = *uc.Name
	}
	if uc.Description != nil {
		orig.Description = null.NewString(*uc.Description, *uc.Description != "")
	}
	if uc.YearLevel != nil {
		orig.YearLevel = null.IntFrom(*uc.YearLevel)
	}
	if uc.TeacherID != nil {
		orig.TeacherID = null.NewString(*uc.TeacherID, *uc.TeacherID != "")
	}
	return orig
}

// Stats summarizes a class.
type Stats struct {
	ClassID                int `json:"class_id"`
	StudentCount           int `json:"student_count"`
	HomeworkCompletionRate int `json:"homework_completion_rate"`
	AverageTestScore       int `json:"average_test_score"`
}

// ScoreOfMax is one recorded score with the max score of its test.
type ScoreOfMax struct {
	Score    float64 `db:"score"`
	MaxScore int     `db:"max_score"`
}
