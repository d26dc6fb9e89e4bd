package lessonplan

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/jamespares/chinaprof/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("lesson plan not found")
)

type LessonPlan struct {
	ID          int    `json:"id" db:"id"`
	SubjectID   int    `json:"subject_id" db:"subject_id"`
	Week        int    `json:"week" db:"week"`
	LessonNo    int    `json:"lesson_no" db:"lesson_no"`
	Intro       string `json:"intro" db:"intro"`
	Objectives  string `json:"objectives" db:"objectives"`
	Explanation string `json:"explanation" db:"explanation"`
	Activity    string `json:"activity" db:"activity"`
	Quiz        string `json:"quiz" db:"quiz"`
	Summary     string `json:"summary" db:"summary"`
}

// NewLessonPlan contains information needed to create a new LessonPlan.
// The six sections are free text and may be empty.
type NewLessonPlan struct {
	SubjectID   int    `json:"subject_id" validate:"required,gt=0"`
	Week        int    `json:"week" validate:"required,gt=0"`
	LessonNo    int    `json:"lesson_no" validate:"required,gt=0"`
	Intro       string `json:"intro"`
	Objectives  string `json:"objectives"`
	Explanation string `json:"explanation"`
	Activity    string `json:"activity"`
	Quiz        string `json:"quiz"`
	Summary     string `json:"summary"`
}

func (nlp *NewLessonPlan) Validate(validate *validator.Validate) error {
	return validate.Struct(nlp)
}

// UpdateLessonPlan defines what may be changed on an existing LessonPlan. Nil fields are left unchanged.
type UpdateLessonPlan struct {
	SubjectID   *int    `json:"subject_id" validate:"omitempty,gt=0"`
	Week        *int    `json:"week" validate:"omitempty,gt=0"`
	LessonNo    *int    `json:"lesson_no" validate:"omitempty,gt=0"`
	Intro       *string `json:"intro"`
	Objectives  *string `json:"objectives"`
	Explanation *string `json:"explanation"`
	Activity    *string `json:"activity"`
	Quiz        *string `json:"quiz"`
	Summary     *string `json:"summary"`
}

func (ulp *UpdateLessonPlan) Validate(validate *validator.Validate) error {
	return validate.Struct(ulp)
}

func (ulp UpdateLessonPlan) apply(orig LessonPlan) LessonPlan {
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&orig.SubjectID, ulp.SubjectID)
	setInt(&orig.Week, ulp.Week)
	setInt(&orig.LessonNo, ulp.LessonNo)
	setStr(&orig.Intro, ulp.Intro)
	setStr(&orig.Objectives, ulp.Objectives)
	setStr(&orig.Explanation, ulp.Explanation)
	setStr(&orig.Activity, ulp.Activity)
	setStr(&orig.Quiz, ulp.Quiz)
	setStr(&orig.Summary, ulp.Summary)
	return orig
}

type QueryFilter struct {
	SubjectID int `query:"subject_id"`
}

type (
	Repository interface {
		CreateLessonPlan(ctx context.Context, lp LessonPlan, exec ...core.DBExecutor) (LessonPlan, error)
		// QueryLessonPlans lists plans ordered by week, then lesson number.
		QueryLessonPlans(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]LessonPlan, error)
		GetLessonPlan(ctx context.Context, id int, exec ...core.DBExecutor) (LessonPlan, error)
		UpdateLessonPlan(ctx context.Context, lp LessonPlan, exec ...core.DBExecutor) (LessonPlan, error)
		DeleteLessonPlan(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nlp NewLessonPlan) (LessonPlan, error) {
	return svc.repo.CreateLessonPlan(ctx, LessonPlan{
		SubjectID:   nlp.SubjectID,
		Week:        nlp.Week,
		LessonNo:    nlp.LessonNo,
		Intro:       nlp.Intro,
		Objectives:  nlp.Objectives,
		Explanation: nlp.Explanation,
		Activity:    nlp.Activity,
		Quiz:        nlp.Quiz,
		Summary:     nlp.Summary,
	})
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]LessonPlan, error) {
	return svc.repo.QueryLessonPlans(ctx, filter)
}

func (svc *Service) Get(ctx context.Context, id int) (LessonPlan, error) {
	return svc.repo.GetLessonPlan(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ulp UpdateLessonPlan) (LessonPlan, error) {
	orig, err := svc.repo.GetLessonPlan(ctx, id)
	if err != nil {
		return LessonPlan{}, err
	}
	return svc.repo.UpdateLessonPlan(ctx, ulp.apply(orig))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteLessonPlan(ctx, id)
}
