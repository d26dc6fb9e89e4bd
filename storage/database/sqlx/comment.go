package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/comment"
)

type commentRepository struct {
	repository
}

var _ comment.Repository = (*commentRepository)(nil) // interface compliance check

func NewCommentRepository(exec core.DBExecutor) *commentRepository {
	return &commentRepository{repository{exec: exec}}
}

func (repo commentRepository) CreateComment(ctx context.Context, c comment.Comment, exec ...core.DBExecutor) (comment.Comment, error) {
	exe := repo.getExec(exec)
	err := get(ctx, exe, &c.ID,
		"INSERT INTO comments (student_id, subject_id, date, comment, evidence) VALUES (?, ?, ?, ?, ?) RETURNING id",
		c.StudentID, c.SubjectID, c.Date, c.Comment, c.Evidence)
	if err != nil {
		return comment.Comment{}, trapConstraintErr(err, "inserting comment")
	}
	if err = get(ctx, exe, &c.SubjectName, "SELECT name FROM subjects WHERE id = ?", c.SubjectID); err != nil {
		return comment.Comment{}, errors.Wrap(err, "finding comment subject")
	}
	return c, nil
}

func (repo commentRepository) QueryComments(ctx context.Context, filter comment.QueryFilter, exec ...core.DBExecutor) ([]comment.Comment, error) {
	query := `
		SELECT c.id, c.student_id, c.subject_id, sub.name AS subject_name, c.date, c.comment, c.evidence
		FROM comments c
		LEFT JOIN subjects sub ON sub.id = c.subject_id`
	var args []interface{}
	if filter.StudentID != 0 {
		query += " WHERE c.student_id = ?"
		args = append(args, filter.StudentID)
	}
	query += " ORDER BY c.date DESC, c.id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	comments := make([]comment.Comment, 0)
	if err := selectAll(ctx, repo.getExec(exec), &comments, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}
	return comments, nil
}

func (repo commentRepository) DeleteComment(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), comment.ErrNotFound, "deleting comment", "DELETE FROM comments WHERE id = ?", id)
}
