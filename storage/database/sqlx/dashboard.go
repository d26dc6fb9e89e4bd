package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/dashboard"
)

type dashboardRepository struct {
	repository
}

var _ dashboard.Repository = (*dashboardRepository)(nil) // interface compliance check

func NewDashboardRepository(exec core.DBExecutor) *dashboardRepository {
	return &dashboardRepository{repository{exec: exec}}
}

func (repo dashboardRepository) Counts(ctx context.Context, since core.Date, activityLimit int, exec ...core.DBExecutor) (dashboard.Counts, error) {
	exe := repo.getExec(exec)
	var c dashboard.Counts

	var totals struct {
		Students int `db:"students"`
		Classes  int `db:"classes"`
		Subjects int `db:"subjects"`
		Comments int `db:"comments"`
	}
	err := get(ctx, exe, &totals, `
		SELECT
			(SELECT COUNT(*) FROM students) AS students,
			(SELECT COUNT(DISTINCT class) FROM students) AS classes,
			(SELECT COUNT(*) FROM subjects) AS subjects,
			(SELECT COUNT(*) FROM comments WHERE date >= ?) AS comments`,
		since)
	if err != nil {
		return c, errors.Wrap(err, "counting totals")
	}
	c.TotalStudents = totals.Students
	c.TotalClasses = totals.Classes
	c.ActiveSubjects = totals.Subjects
	c.RecentComments = totals.Comments

	var hw struct {
		Entries   int `db:"entries"`
		Completed int `db:"completed"`
	}
	err = get(ctx, exe, &hw,
		"SELECT COUNT(*) AS entries, COALESCE(SUM(CASE WHEN status THEN 1 ELSE 0 END), 0) AS completed FROM homework")
	if err != nil {
		return c, errors.Wrap(err, "counting homework")
	}
	c.HomeworkEntries = hw.Entries
	c.HomeworkCompleted = hw.Completed

	c.RecentActivity = make([]dashboard.Activity, 0)
	err = selectAll(ctx, exe, &c.RecentActivity, `
		SELECT type, date, count FROM (
			SELECT 'homework' AS type, date, COUNT(*) AS count FROM homework WHERE date >= ? GROUP BY date
			UNION ALL
			SELECT 'comment' AS type, date, COUNT(*) AS count FROM comments WHERE date >= ? GROUP BY date
		) activity
		ORDER BY date DESC, type ASC
		LIMIT ?`,
		since, since, activityLimit)
	if err != nil {
		return c, errors.Wrap(err, "querying recent activity")
	}

	var breakdown []struct {
		Class string `db:"class"`
		Count int    `db:"count"`
	}
	if err = selectAll(ctx, exe, &breakdown, "SELECT class, COUNT(*) AS count FROM students GROUP BY class"); err != nil {
		return c, errors.Wrap(err, "querying class breakdown")
	}
	c.ClassBreakdown = make(map[string]int, len(breakdown))
	for _, b := range breakdown {
		c.ClassBreakdown[b.Class] = b.Count
	}
	return c, nil
}
