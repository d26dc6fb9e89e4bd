package comment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/jamespares/chinaprof/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("comment not found")
)

// Comment is a free-text note about a student. Comments are never updated.
type Comment struct {
	ID          int         `json:"id" db:"id"`
	StudentID   int         `json:"student_id" db:"student_id"`
	SubjectID   int         `json:"subject_id" db:"subject_id"`
	SubjectName null.String `json:"subject_name" db:"subject_name"`
	Date        core.Date   `json:"date" db:"date"`
	Comment     string      `json:"comment" db:"comment"`
	Evidence    null.String `json:"evidence" db:"evidence"`
}

// NewComment contains information needed to record a Comment. Date defaults to today.
type NewComment struct {
	StudentID int         `json:"student_id" validate:"required,gt=0"`
	SubjectID int         `json:"subject_id" validate:"required,gt=0"`
	Comment   string      `json:"comment" validate:"required"`
	Evidence  null.String `json:"evidence"`
	Date      core.Date   `json:"date"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Comment = core.CleanString(nc.Comment)
	nc.Evidence.String = core.CleanString(nc.Evidence.String)
	nc.Evidence.Valid = nc.Evidence.String != ""
	return validate.Struct(nc)
}

type QueryFilter struct {
	StudentID int `query:"student_id"`
	Limit     int `query:"limit"`
}

type (
	Repository interface {
		CreateComment(ctx context.Context, c Comment, exec ...core.DBExecutor) (Comment, error)
		// QueryComments lists comments newest first, with their subject name.
		// Zero filter fields are ignored.
		QueryComments(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Comment, error)
		DeleteComment(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
		loc     *time.Location
	}
)

func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{repo: repo, nowFunc: time.Now, loc: loc}
}

func (svc *Service) Create(ctx context.Context, nc NewComment) (Comment, error) {
	date := nc.Date
	if date.IsZero() {
		date = core.Today(svc.nowFunc(), svc.loc)
	}
	return svc.repo.CreateComment(ctx, Comment{
		StudentID: nc.StudentID,
		SubjectID: nc.SubjectID,
		Date:      date,
		Comment:   nc.Comment,
		Evidence:  nc.Evidence,
	})
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Comment, error) {
	return svc.repo.QueryComments(ctx, filter)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteComment(ctx, id)
}
