package class

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

const (
	// StatsHomeworkDays is the trailing window of the homework completion rate.
	StatsHomeworkDays = 30
	// StatsRecentTests is how many of the latest tests the average test score covers.
	StatsRecentTests = 10
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("class not found")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, c Class, exec ...core.DBExecutor) (Class, error)
		// QueryClasses lists classes ordered by year level, then name.
		QueryClasses(ctx context.Context, exec ...core.DBExecutor) ([]Class, error)
		GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (Class, error)
		UpdateClass(ctx context.Context, c Class, exec ...core.DBExecutor) (Class, error)
		// DeleteClass removes the class; its students keep their class label and lose class_id.
		DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error

		CountStudents(ctx context.Context, classID int, exec ...core.DBExecutor) (int, error)
		// CountHomework counts completed and recorded homework of the class' students on or after since.
		CountHomework(ctx context.Context, classID int, since core.Date, exec ...core.DBExecutor) (completed, observed int, err error)
		// RecentScores returns the scores of the class' students in the latest `tests` tests.
		RecentScores(ctx context.Context, classID int, tests int, exec ...core.DBExecutor) ([]ScoreOfMax, error)
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
		loc     *time.Location
	}
)

func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{repo: repo, nowFunc: time.Now, loc: loc}
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	now := svc.nowFunc().UTC()
	return svc.repo.CreateClass(ctx, Class{
		Name:        nc.Name,
		Description: nc.Description,
		YearLevel:   nc.YearLevel,
		TeacherID:   nc.TeacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) Query(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx)
}

func (svc *Service) Get(ctx context.Context, id int) (Class, error) {
	return svc.repo.GetClass(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateClass) (Class, error) {
	orig, err := svc.repo.GetClass(ctx, id)
	if err != nil {
		return Class{}, err
	}
	c := uc.apply(orig)
	c.UpdatedAt = svc.nowFunc().UTC()
	return svc.repo.UpdateClass(ctx, c)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteClass(ctx, id)
}

// Stats computes the class summary. Homework completion divides by recorded entries only.
func (svc *Service) Stats(ctx context.Context, id int) (Stats, error) {
	if _, err := svc.repo.GetClass(ctx, id); err != nil {
		return Stats{}, err
	}

	count, err := svc.repo.CountStudents(ctx, id)
	if err != nil {
		return Stats{}, errors.Wrap(err, "counting students")
	}

	since := core.Today(svc.nowFunc(), svc.loc).AddDays(-StatsHomeworkDays)
	completed, observed, err := svc.repo.CountHomework(ctx, id, since)
	if err != nil {
		return Stats{}, errors.Wrap(err, "counting homework")
	}

	scores, err := svc.repo.RecentScores(ctx, id, StatsRecentTests)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying recent scores")
	}
	ratios := make([]float64, 0, len(scores))
	for _, s := range scores {
		ratios = append(ratios, stats.Ratio(s.Score, float64(s.MaxScore))*100)
	}

	return Stats{
		ClassID:                id,
		StudentCount:           count,
		HomeworkCompletionRate: stats.Percentage(completed, observed),
		AverageTestScore:       stats.RoundedMean(ratios),
	}, nil
}
