package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

const (
	CacheKey = "dashboard:overview"

	// RecentDays is the trailing window of recent comments and activity.
	RecentDays          = 7
	RecentActivityLimit = 10
)

// Activity is the number of records of one kind ("homework" or "comment") logged on one day.
type Activity struct {
	Type  string    `json:"type" db:"type"`
	Date  core.Date `json:"date" db:"date"`
	Count int       `json:"count" db:"count"`
}

// Counts are the raw figures the overview is derived from.
type Counts struct {
	TotalStudents     int
	TotalClasses      int
	ActiveSubjects    int
	HomeworkEntries   int
	HomeworkCompleted int
	RecentComments    int
	RecentActivity    []Activity
	ClassBreakdown    map[string]int
}

type Overview struct {
	TotalStudents            int            `json:"total_students"`
	TotalClasses             int            `json:"total_classes"`
	ActiveSubjects           int            `json:"active_subjects"`
	HomeworkCompletion       int            `json:"homework_completion"`
	TotalHomeworkEntries     int            `json:"total_homework_entries"`
	CompletedHomeworkEntries int            `json:"completed_homework_entries"`
	RecentComments           int            `json:"recent_comments"`
	RecentActivity           []Activity     `json:"recent_activity"`
	ClassBreakdown           map[string]int `json:"class_breakdown"`
	GeneratedAt              time.Time      `json:"generated_at"`
}

type (
	Repository interface {
		// Counts gathers every figure of the overview. Recent figures start on since, inclusive.
		Counts(ctx context.Context, since core.Date, activityLimit int, exec ...core.DBExecutor) (Counts, error)
	}

	Service struct {
		repo    Repository
		cache   core.Cache
		ttl     time.Duration
		logger  core.Logger
		nowFunc func() time.Time
		loc     *time.Location
	}
)

func NewService(repo Repository, cache core.Cache, ttl time.Duration, logger core.Logger, loc *time.Location) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, logger: logger, nowFunc: time.Now, loc: loc}
}

// Overview returns the cached overview when present; hit reports whether it was.
// Cache failures are logged and fall back to computing the overview.
func (svc *Service) Overview(ctx context.Context) (ov Overview, hit bool, err error) {
	err = svc.cache.Get(ctx, CacheKey, &ov)
	switch {
	case err == nil:
		return ov, true, nil
	case errors.Cause(err) != core.ErrCacheMiss:
		svc.logger.Warn("dashboard cache read failed", err)
	}

	ov, err = svc.Refresh(ctx)
	return ov, false, err
}

// Refresh recomputes the overview and stores it in the cache.
func (svc *Service) Refresh(ctx context.Context) (Overview, error) {
	ov, err := svc.compute(ctx)
	if err != nil {
		return Overview{}, err
	}
	if err = svc.cache.Set(ctx, CacheKey, ov, svc.ttl); err != nil {
		svc.logger.Warn("dashboard cache write failed", err)
	}
	return ov, nil
}

// Invalidate drops the cached overview.
func (svc *Service) Invalidate(ctx context.Context) error {
	return svc.cache.Delete(ctx, CacheKey)
}

func (svc *Service) compute(ctx context.Context) (Overview, error) {
	now := svc.nowFunc()
	since := core.Today(now, svc.loc).AddDays(-RecentDays)

	c, err := svc.repo.Counts(ctx, since, RecentActivityLimit)
	if err != nil {
		return Overview{}, errors.Wrap(err, "gathering dashboard counts")
	}
	if c.RecentActivity == nil {
		c.RecentActivity = []Activity{}
	}
	if c.ClassBreakdown == nil {
		c.ClassBreakdown = map[string]int{}
	}

	return Overview{
		TotalStudents:            c.TotalStudents,
		TotalClasses:             c.TotalClasses,
		ActiveSubjects:           c.ActiveSubjects,
		HomeworkCompletion:       stats.Percentage(c.HomeworkCompleted, c.HomeworkEntries),
		TotalHomeworkEntries:     c.HomeworkEntries,
		CompletedHomeworkEntries: c.HomeworkCompleted,
		RecentComments:           c.RecentComments,
		RecentActivity:           c.RecentActivity,
		ClassBreakdown:           c.ClassBreakdown,
		GeneratedAt:              now.UTC(),
	}, nil
}
