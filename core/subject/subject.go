package subject

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/jamespares/chinaprof/core"
)

// DefaultTeacherID owns subjects created without an explicit teacher.
const DefaultTeacherID = "teacher"

var (
	// errors
	ErrNotFound = core.NewNotFoundError("subject not found")
)

type Subject struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	TeacherID string `json:"teacher_id" db:"teacher_id"`
}

type NewSubject struct {
	Name      string `json:"name" validate:"required"`
	TeacherID string `json:"teacher_id"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.TeacherID = core.CleanString(ns.TeacherID)
	if ns.TeacherID == "" {
		ns.TeacherID = DefaultTeacherID
	}
	return validate.Struct(ns)
}

type (
	Repository interface {
		CreateSubject(ctx context.Context, s Subject, exec ...core.DBExecutor) (Subject, error)
		// QuerySubjects lists subjects ordered by name.
		QuerySubjects(ctx context.Context, exec ...core.DBExecutor) ([]Subject, error)
		GetSubject(ctx context.Context, id int, exec ...core.DBExecutor) (Subject, error)
		DeleteSubject(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(ctx, Subject{Name: ns.Name, TeacherID: ns.TeacherID})
}

func (svc *Service) Query(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *Service) Get(ctx context.Context, id int) (Subject, error) {
	return svc.repo.GetSubject(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteSubject(ctx, id)
}
