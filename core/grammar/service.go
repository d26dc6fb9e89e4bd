package grammar

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("grammar error not found")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, e Event, exec ...core.DBExecutor) (Event, error)
		// QueryEvents lists events newest first. A zero filter.StudentID keeps every student.
		QueryEvents(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Event, error)
		DeleteEvent(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Roster interface {
		Roster(ctx context.Context) ([]stats.StudentRef, error)
	}

	Service struct {
		repo    Repository
		roster  Roster
		nowFunc func() time.Time
		loc     *time.Location
	}
)

func NewService(repo Repository, roster Roster, loc *time.Location) *Service {
	return &Service{repo: repo, roster: roster, nowFunc: time.Now, loc: loc}
}

// Namer resolves codes through the catalog.
var Namer = stats.CodeNamer(ErrorName)

func (svc *Service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	date := ne.Date
	if date.IsZero() {
		date = core.Today(svc.nowFunc(), svc.loc)
	}
	return svc.repo.CreateEvent(ctx, Event{
		StudentID: ne.StudentID,
		SubjectID: ne.SubjectID,
		Date:      date,
		ErrorCode: ne.ErrorCode,
	})
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, filter)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteEvent(ctx, id)
}

// Analytics ranks error codes and students over the filtered events.
func (svc *Service) Analytics(ctx context.Context, filter stats.GrammarFilter) (stats.GrammarAnalysis, error) {
	events, err := svc.repo.QueryEvents(ctx, QueryFilter{StudentID: filter.StudentID})
	if err != nil {
		return stats.GrammarAnalysis{}, errors.Wrap(err, "querying grammar errors")
	}
	roster, err := svc.roster.Roster(ctx)
	if err != nil {
		return stats.GrammarAnalysis{}, errors.Wrap(err, "querying roster")
	}
	return stats.AnalyzeGrammar(Stats(events), roster, filter, svc.now(), Namer), nil
}

// now is the current instant seen from the configured location, so window cutoffs fall on local days.
func (svc *Service) now() time.Time {
	if svc.loc == nil {
		return svc.nowFunc()
	}
	return svc.nowFunc().In(svc.loc)
}
