// Package schedsvc runs the application's background jobs.
package schedsvc

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/dashboard"
)

// jobTimeout bounds a single job run.
const jobTimeout = time.Minute

type DashboardRefresher interface {
	Refresh(ctx context.Context) (dashboard.Overview, error)
}

type Scheduler struct {
	cron   *gocron.Scheduler
	logger core.Logger
}

func New(loc *time.Location, logger core.Logger) *Scheduler {
	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()
	return &Scheduler{cron: cron, logger: logger}
}

// ScheduleDashboardRefresh recomputes the cached dashboard overview every interval.
// The first run happens as soon as the scheduler starts.
func (s *Scheduler) ScheduleDashboardRefresh(every time.Duration, svc DashboardRefresher) error {
	if every <= 0 {
		return errors.Errorf("invalid dashboard refresh interval %v", every)
	}
	_, err := s.cron.Every(every).Tag("dashboard").Do(s.refreshDashboard, svc)
	return errors.Wrap(err, "scheduling dashboard refresh")
}

func (s *Scheduler) refreshDashboard(svc DashboardRefresher) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := svc.Refresh(ctx); err != nil {
		s.logger.Error("refreshing dashboard", err)
		return
	}
	s.logger.Debug("dashboard refreshed")
}

func (s *Scheduler) Len() int {
	return s.cron.Len()
}

// Start runs the jobs in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
