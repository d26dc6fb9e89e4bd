package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/class"
)

const classColumns = "id, name, description, year_level, teacher_id, created_at, updated_at"

type classRepository struct {
	repository
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(exec core.DBExecutor) *classRepository {
	return &classRepository{repository{exec: exec}}
}

func (repo classRepository) CreateClass(ctx context.Context, c class.Class, exec ...core.DBExecutor) (class.Class, error) {
	err := get(ctx, repo.getExec(exec), &c.ID,
		"INSERT INTO classes (name, description, year_level, teacher_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		c.Name, c.Description, c.YearLevel, c.TeacherID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return class.Class{}, trapConstraintErr(err, "inserting class")
	}
	return c, nil
}

func (repo classRepository) QueryClasses(ctx context.Context, exec ...core.DBExecutor) ([]class.Class, error) {
	classes := make([]class.Class, 0)
	// NULL year levels last on both engines
	query := "SELECT " + classColumns + " FROM classes ORDER BY CASE WHEN year_level IS NULL THEN 1 ELSE 0 END, year_level, name"
	if err := selectAll(ctx, repo.getExec(exec), &classes, query); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return classes, nil
}

func (repo classRepository) GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (class.Class, error) {
	var c class.Class
	if err := get(ctx, repo.getExec(exec), &c, "SELECT "+classColumns+" FROM classes WHERE id = ?", id); err != nil {
		return class.Class{}, trapNoRowsErr(err, class.ErrNotFound, "finding class")
	}
	return c, nil
}

func (repo classRepository) UpdateClass(ctx context.Context, c class.Class, exec ...core.DBExecutor) (class.Class, error) {
	err := execOne(ctx, repo.getExec(exec), class.ErrNotFound, "updating class",
		"UPDATE classes SET name = ?, description = ?, year_level = ?, teacher_id = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Description, c.YearLevel, c.TeacherID, c.UpdatedAt, c.ID)
	if err != nil {
		return class.Class{}, err
	}
	return c, nil
}

func (repo classRepository) DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), class.ErrNotFound, "deleting class", "DELETE FROM classes WHERE id = ?", id)
}

func (repo classRepository) CountStudents(ctx context.Context, classID int, exec ...core.DBExecutor) (int, error) {
	var count int
	if err := get(ctx, repo.getExec(exec), &count, "SELECT COUNT(*) FROM students WHERE class_id = ?", classID); err != nil {
		return 0, errors.Wrap(err, "counting class students")
	}
	return count, nil
}

func (repo classRepository) CountHomework(ctx context.Context, classID int, since core.Date, exec ...core.DBExecutor) (completed, observed int, err error) {
	var res struct {
		Completed int `db:"completed"`
		Observed  int `db:"observed"`
	}
	err = get(ctx, repo.getExec(exec), &res, `
		SELECT COALESCE(SUM(CASE WHEN h.status THEN 1 ELSE 0 END), 0) AS completed, COUNT(*) AS observed
		FROM homework h
		JOIN students s ON s.id = h.student_id
		WHERE s.class_id = ? AND h.date >= ?`,
		classID, since)
	if err != nil {
		return 0, 0, errors.Wrap(err, "counting class homework")
	}
	return res.Completed, res.Observed, nil
}

func (repo classRepository) RecentScores(ctx context.Context, classID int, tests int, exec ...core.DBExecutor) ([]class.ScoreOfMax, error) {
	exe := repo.getExec(exec)

	var testIDs []int
	if err := selectAll(ctx, exe, &testIDs, "SELECT id FROM weekly_tests ORDER BY created_at DESC, id DESC LIMIT ?", tests); err != nil {
		return nil, errors.Wrap(err, "querying recent tests")
	}
	scores := make([]class.ScoreOfMax, 0)
	if len(testIDs) == 0 {
		return scores, nil
	}

	query, args, err := sqlx.In(`
		SELECT ws.score, wt.max_score
		FROM weekly_scores ws
		JOIN weekly_tests wt ON wt.id = ws.test_id
		JOIN students s ON s.id = ws.student_id
		WHERE s.class_id = ? AND ws.test_id IN (?)`,
		classID, testIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building recent scores query")
	}
	if err = selectAll(ctx, exe, &scores, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying class scores")
	}
	return scores, nil
}
