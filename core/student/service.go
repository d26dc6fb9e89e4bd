package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("student not found")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		// QueryStudents applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Student.Name or Student.Class.
		QueryStudents(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error)
		GetStudent(ctx context.Context, id int, exec ...core.DBExecutor) (Student, error)
		UpdateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		db   core.DB
		repo Repository
	}
)

func NewService(db core.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	return svc.repo.CreateStudent(ctx, Student{
		Name:      ns.Name,
		Class:     ns.Class,
		ClassID:   ns.ClassID,
		DOB:       ns.DOB,
		AvatarURL: ns.AvatarURL,
	})
}

// Import creates all students in a single transaction: either every row is inserted or none.
func (svc *Service) Import(ctx context.Context, students []NewStudent) ([]Student, error) {
	created := make([]Student, 0, len(students))
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		for i, ns := range students {
			s, err := svc.repo.CreateStudent(ctx, Student{
				Name:      ns.Name,
				Class:     ns.Class,
				ClassID:   ns.ClassID,
				DOB:       ns.DOB,
				AvatarURL: ns.AvatarURL,
			}, tx)
			if err != nil {
				return errors.Wrapf(err, "importing student #%d", i+1)
			}
			created = append(created, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, filter, ordering)
}

func (svc *Service) Get(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(ctx, us.apply(orig))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}

// Roster lists every student ordered by name.
func (svc *Service) Roster(ctx context.Context) ([]stats.StudentRef, error) {
	students, err := svc.repo.QueryStudents(ctx, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying roster")
	}
	return Refs(students), nil
}
