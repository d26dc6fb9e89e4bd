package weeklytest

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

type Test struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	MaxScore  int       `json:"max_score" db:"max_score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

type NewTest struct {
	Name     string `json:"name" validate:"required"`
	MaxScore int    `json:"max_score" validate:"required,gt=0"`
}

func (nt *NewTest) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	return validate.Struct(nt)
}

// Score is one student's score on a test; (TestID, StudentID) is unique.
type Score struct {
	ID        int     `json:"id" db:"id"`
	TestID    int     `json:"test_id" db:"test_id"`
	StudentID int     `json:"student_id" db:"student_id"`
	Score     float64 `json:"score" db:"score"`
}

// StudentScore is a Score with the student it belongs to.
type StudentScore struct {
	Score
	StudentName  string `json:"student_name" db:"student_name"`
	StudentClass string `json:"student_class" db:"student_class"`
}

func (s StudentScore) Entry() stats.ScoreEntry {
	return stats.ScoreEntry{
		Student: stats.StudentRef{ID: s.StudentID, Name: s.StudentName, Class: s.StudentClass},
		Score:   s.Score.Score,
	}
}

// TestScore is a Score with the test it was recorded on.
type TestScore struct {
	TestID     int       `json:"test_id" db:"test_id"`
	TestName   string    `json:"test_name" db:"test_name"`
	MaxScore   int       `json:"max_score" db:"max_score"`
	Score      float64   `json:"score" db:"score"`
	Percentage float64   `json:"percentage" db:"-"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // test creation, UTC
}

// ScoreBatch is a bulk score submission.
type ScoreBatch struct {
	Scores []stats.ScoreSubmission `json:"scores" validate:"required,min=1,dive"`
}

func (sb *ScoreBatch) Validate(validate *validator.Validate) error {
	return validate.Struct(sb)
}

// Results are the derived figures of one test.
type Results struct {
	Test         Test               `json:"test"`
	Summary      stats.TestSummary  `json:"summary"`
	TopPerformer *stats.RankedScore `json:"top_performer"`
}
