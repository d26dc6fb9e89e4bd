package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/homework"
)

type homeworkRepository struct {
	repository
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(exec core.DBExecutor) *homeworkRepository {
	return &homeworkRepository{repository{exec: exec}}
}

func (repo homeworkRepository) UpsertEntry(ctx context.Context, e homework.Entry, exec ...core.DBExecutor) (homework.Entry, error) {
	err := get(ctx, repo.getExec(exec), &e.ID, `
		INSERT INTO homework (student_id, date, status) VALUES (?, ?, ?)
		ON CONFLICT (student_id, date) DO UPDATE SET status = excluded.status
		RETURNING id`,
		e.StudentID, e.Date, e.Status)
	if err != nil {
		return homework.Entry{}, trapConstraintErr(err, "upserting homework")
	}
	return e, nil
}

func (repo homeworkRepository) QueryEntries(ctx context.Context, filter homework.QueryFilter, exec ...core.DBExecutor) ([]homework.Entry, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.StudentID != 0 {
		where = append(where, "student_id = ?")
		args = append(args, filter.StudentID)
	}
	if !filter.StartDate.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.EndDate)
	}

	query := "SELECT id, student_id, date, status FROM homework"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, student_id ASC"

	entries := make([]homework.Entry, 0)
	if err := selectAll(ctx, repo.getExec(exec), &entries, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying homework")
	}
	return entries, nil
}

// DeleteEntry is a no-op on a cell that is already unset.
func (repo homeworkRepository) DeleteEntry(ctx context.Context, studentID int, date core.Date, exec ...core.DBExecutor) error {
	_, err := execAffected(ctx, repo.getExec(exec), "DELETE FROM homework WHERE student_id = ? AND date = ?", studentID, date)
	return errors.Wrap(err, "deleting homework")
}

func (repo homeworkRepository) DeleteAllEntries(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	n, err := execAffected(ctx, repo.getExec(exec), "DELETE FROM homework")
	if err != nil {
		return 0, errors.Wrap(err, "wiping homework")
	}
	return n, nil
}
