package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/subject"
)

type subjectRepository struct {
	repository
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(exec core.DBExecutor) *subjectRepository {
	return &subjectRepository{repository{exec: exec}}
}

func (repo subjectRepository) CreateSubject(ctx context.Context, s subject.Subject, exec ...core.DBExecutor) (subject.Subject, error) {
	err := get(ctx, repo.getExec(exec), &s.ID,
		"INSERT INTO subjects (name, teacher_id) VALUES (?, ?) RETURNING id", s.Name, s.TeacherID)
	if err != nil {
		return subject.Subject{}, trapConstraintErr(err, "inserting subject")
	}
	return s, nil
}

func (repo subjectRepository) QuerySubjects(ctx context.Context, exec ...core.DBExecutor) ([]subject.Subject, error) {
	subjects := make([]subject.Subject, 0)
	if err := selectAll(ctx, repo.getExec(exec), &subjects, "SELECT id, name, teacher_id FROM subjects ORDER BY name"); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo subjectRepository) GetSubject(ctx context.Context, id int, exec ...core.DBExecutor) (subject.Subject, error) {
	var s subject.Subject
	if err := get(ctx, repo.getExec(exec), &s, "SELECT id, name, teacher_id FROM subjects WHERE id = ?", id); err != nil {
		return subject.Subject{}, trapNoRowsErr(err, subject.ErrNotFound, "finding subject")
	}
	return s, nil
}

func (repo subjectRepository) DeleteSubject(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), subject.ErrNotFound, "deleting subject", "DELETE FROM subjects WHERE id = ?", id)
}
