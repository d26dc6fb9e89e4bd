package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/lessonplan"
)

const lessonPlanColumns = "id, subject_id, week, lesson_no, intro, objectives, explanation, activity, quiz, summary"

type lessonPlanRepository struct {
	repository
}

var _ lessonplan.Repository = (*lessonPlanRepository)(nil) // interface compliance check

func NewLessonPlanRepository(exec core.DBExecutor) *lessonPlanRepository {
	return &lessonPlanRepository{repository{exec: exec}}
}

func (repo lessonPlanRepository) CreateLessonPlan(ctx context.Context, lp lessonplan.LessonPlan, exec ...core.DBExecutor) (lessonplan.LessonPlan, error) {
	query, args, err := sqlx.Named(`
		INSERT INTO lesson_plans (subject_id, week, lesson_no, intro, objectives, explanation, activity, quiz, summary)
		VALUES (:subject_id, :week, :lesson_no, :intro, :objectives, :explanation, :activity, :quiz, :summary)
		RETURNING id`, lp)
	if err != nil {
		return lessonplan.LessonPlan{}, errors.Wrap(err, "binding lesson plan")
	}
	if err = get(ctx, repo.getExec(exec), &lp.ID, query, args...); err != nil {
		return lessonplan.LessonPlan{}, trapConstraintErr(err, "inserting lesson plan")
	}
	return lp, nil
}

func (repo lessonPlanRepository) QueryLessonPlans(ctx context.Context, filter lessonplan.QueryFilter, exec ...core.DBExecutor) ([]lessonplan.LessonPlan, error) {
	query := "SELECT " + lessonPlanColumns + " FROM lesson_plans"
	var args []interface{}
	if filter.SubjectID != 0 {
		query += " WHERE subject_id = ?"
		args = append(args, filter.SubjectID)
	}
	query += " ORDER BY week, lesson_no, id"

	plans := make([]lessonplan.LessonPlan, 0)
	if err := selectAll(ctx, repo.getExec(exec), &plans, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying lesson plans")
	}
	return plans, nil
}

func (repo lessonPlanRepository) GetLessonPlan(ctx context.Context, id int, exec ...core.DBExecutor) (lessonplan.LessonPlan, error) {
	var lp lessonplan.LessonPlan
	if err := get(ctx, repo.getExec(exec), &lp, "SELECT "+lessonPlanColumns+" FROM lesson_plans WHERE id = ?", id); err != nil {
		return lessonplan.LessonPlan{}, trapNoRowsErr(err, lessonplan.ErrNotFound, "finding lesson plan")
	}
	return lp, nil
}

func (repo lessonPlanRepository) UpdateLessonPlan(ctx context.Context, lp lessonplan.LessonPlan, exec ...core.DBExecutor) (lessonplan.LessonPlan, error) {
	query, args, err := sqlx.Named(`
		UPDATE lesson_plans SET
			subject_id = :subject_id, week = :week, lesson_no = :lesson_no,
			intro = :intro, objectives = :objectives, explanation = :explanation,
			activity = :activity, quiz = :quiz, summary = :summary
		WHERE id = :id`, lp)
	if err != nil {
		return lessonplan.LessonPlan{}, errors.Wrap(err, "binding lesson plan")
	}
	if err = execOne(ctx, repo.getExec(exec), lessonplan.ErrNotFound, "updating lesson plan", query, args...); err != nil {
		return lessonplan.LessonPlan{}, err
	}
	return lp, nil
}

func (repo lessonPlanRepository) DeleteLessonPlan(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), lessonplan.ErrNotFound, "deleting lesson plan", "DELETE FROM lesson_plans WHERE id = ?", id)
}
