package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/weeklytest"
)

type weeklyTestRepository struct {
	repository
}

var _ weeklytest.Repository = (*weeklyTestRepository)(nil) // interface compliance check

func NewWeeklyTestRepository(exec core.DBExecutor) *weeklyTestRepository {
	return &weeklyTestRepository{repository{exec: exec}}
}

func (repo weeklyTestRepository) CreateTest(ctx context.Context, t weeklytest.Test, exec ...core.DBExecutor) (weeklytest.Test, error) {
	err := get(ctx, repo.getExec(exec), &t.ID,
		"INSERT INTO weekly_tests (name, max_score, created_at) VALUES (?, ?, ?) RETURNING id",
		t.Name, t.MaxScore, t.CreatedAt)
	if err != nil {
		return weeklytest.Test{}, trapConstraintErr(err, "inserting weekly test")
	}
	return t, nil
}

func (repo weeklyTestRepository) QueryTests(ctx context.Context, exec ...core.DBExecutor) ([]weeklytest.Test, error) {
	tests := make([]weeklytest.Test, 0)
	err := selectAll(ctx, repo.getExec(exec), &tests,
		"SELECT id, name, max_score, created_at FROM weekly_tests ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "querying weekly tests")
	}
	return tests, nil
}

func (repo weeklyTestRepository) GetTest(ctx context.Context, id int, exec ...core.DBExecutor) (weeklytest.Test, error) {
	var t weeklytest.Test
	if err := get(ctx, repo.getExec(exec), &t, "SELECT id, name, max_score, created_at FROM weekly_tests WHERE id = ?", id); err != nil {
		return weeklytest.Test{}, trapNoRowsErr(err, weeklytest.ErrNotFound, "finding weekly test")
	}
	return t, nil
}

func (repo weeklyTestRepository) DeleteTest(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), weeklytest.ErrNotFound, "deleting weekly test", "DELETE FROM weekly_tests WHERE id = ?", id)
}

func (repo weeklyTestRepository) UpsertScore(ctx context.Context, s weeklytest.Score, exec ...core.DBExecutor) (weeklytest.Score, error) {
	err := get(ctx, repo.getExec(exec), &s.ID, `
		INSERT INTO weekly_scores (test_id, student_id, score) VALUES (?, ?, ?)
		ON CONFLICT (test_id, student_id) DO UPDATE SET score = excluded.score
		RETURNING id`,
		s.TestID, s.StudentID, s.Score)
	if err != nil {
		return weeklytest.Score{}, trapConstraintErr(err, "upserting score")
	}
	return s, nil
}

func (repo weeklyTestRepository) QueryScores(ctx context.Context, testID int, exec ...core.DBExecutor) ([]weeklytest.StudentScore, error) {
	scores := make([]weeklytest.StudentScore, 0)
	err := selectAll(ctx, repo.getExec(exec), &scores, `
		SELECT ws.id, ws.test_id, ws.student_id, ws.score, s.name AS student_name, s.class AS student_class
		FROM weekly_scores ws
		JOIN students s ON s.id = ws.student_id
		WHERE ws.test_id = ?
		ORDER BY s.name, s.id`,
		testID)
	if err != nil {
		return nil, errors.Wrap(err, "querying scores")
	}
	return scores, nil
}

func (repo weeklyTestRepository) RecentScores(ctx context.Context, studentID, limit int, exec ...core.DBExecutor) ([]weeklytest.TestScore, error) {
	scores := make([]weeklytest.TestScore, 0)
	err := selectAll(ctx, repo.getExec(exec), &scores, `
		SELECT wt.id AS test_id, wt.name AS test_name, wt.max_score, ws.score, wt.created_at
		FROM weekly_scores ws
		JOIN weekly_tests wt ON wt.id = ws.test_id
		WHERE ws.student_id = ?
		ORDER BY wt.created_at DESC, wt.id DESC
		LIMIT ?`,
		studentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying student scores")
	}
	return scores, nil
}

func (repo weeklyTestRepository) CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	var count int
	if err := get(ctx, repo.getExec(exec), &count, "SELECT COUNT(*) FROM students"); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}
