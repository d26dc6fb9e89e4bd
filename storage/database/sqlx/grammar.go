package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/grammar"
)

type grammarRepository struct {
	repository
}

var _ grammar.Repository = (*grammarRepository)(nil) // interface compliance check

func NewGrammarRepository(exec core.DBExecutor) *grammarRepository {
	return &grammarRepository{repository{exec: exec}}
}

func (repo grammarRepository) CreateEvent(ctx context.Context, e grammar.Event, exec ...core.DBExecutor) (grammar.Event, error) {
	err := get(ctx, repo.getExec(exec), &e.ID,
		"INSERT INTO grammar_errors (student_id, subject_id, date, error_code) VALUES (?, ?, ?, ?) RETURNING id",
		e.StudentID, e.SubjectID, e.Date, e.ErrorCode)
	if err != nil {
		return grammar.Event{}, trapConstraintErr(err, "inserting grammar error")
	}
	return e, nil
}

func (repo grammarRepository) QueryEvents(ctx context.Context, filter grammar.QueryFilter, exec ...core.DBExecutor) ([]grammar.Event, error) {
	query := "SELECT id, student_id, subject_id, date, error_code FROM grammar_errors"
	var args []interface{}
	if filter.StudentID != 0 {
		query += " WHERE student_id = ?"
		args = append(args, filter.StudentID)
	}
	query += " ORDER BY date DESC, id DESC"

	events := make([]grammar.Event, 0)
	if err := selectAll(ctx, repo.getExec(exec), &events, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying grammar errors")
	}
	return events, nil
}

func (repo grammarRepository) DeleteEvent(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), grammar.ErrNotFound, "deleting grammar error", "DELETE FROM grammar_errors WHERE id = ?", id)
}
