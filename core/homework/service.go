package homework

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("homework entry not found")
	ErrInvalidRange = errors.New("invalid date range")
)

type (
	Repository interface {
		// UpsertEntry records the status of (student, date), replacing any previous one.
		UpsertEntry(ctx context.Context, e Entry, exec ...core.DBExecutor) (Entry, error)
		// QueryEntries lists entries newest first. Zero filter fields are ignored.
		QueryEntries(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Entry, error)
		DeleteEntry(ctx context.Context, studentID int, date core.Date, exec ...core.DBExecutor) error
		DeleteAllEntries(ctx context.Context, exec ...core.DBExecutor) (int64, error)
	}

	// Roster lists the students a grid has rows for.
	Roster interface {
		Roster(ctx context.Context) ([]stats.StudentRef, error)
	}

	Service struct {
		db     core.DB
		repo   Repository
		roster Roster
	}
)

func NewService(db core.DB, repo Repository, roster Roster) *Service {
	return &Service{db: db, repo: repo, roster: roster}
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	return svc.repo.QueryEntries(ctx, filter)
}

// Submit upserts every entry in one transaction. The submission must already be validated.
func (svc *Service) Submit(ctx context.Context, sub Submission) ([]Entry, error) {
	saved := make([]Entry, 0, len(sub.Entries))
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		for _, in := range sub.Entries {
			e, err := svc.repo.UpsertEntry(ctx, Entry{StudentID: in.StudentID, Date: in.Date, Status: *in.Status}, tx)
			if err != nil {
				return errors.Wrapf(err, "saving homework of student %d on %s", in.StudentID, in.Date)
			}
			saved = append(saved, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Clear resets one cell to unset.
func (svc *Service) Clear(ctx context.Context, cell CellRef) error {
	return svc.repo.DeleteEntry(ctx, cell.StudentID, cell.Date)
}

// Wipe deletes every homework entry and returns how many were removed.
func (svc *Service) Wipe(ctx context.Context) (int64, error) {
	return svc.repo.DeleteAllEntries(ctx)
}

// Grid builds the student x day completion grid over r.
func (svc *Service) Grid(ctx context.Context, r DateRange) (stats.Grid, error) {
	if err := r.Validate(); err != nil {
		return stats.Grid{}, err
	}

	students, err := svc.roster.Roster(ctx)
	if err != nil {
		return stats.Grid{}, errors.Wrap(err, "querying roster")
	}
	entries, err := svc.repo.QueryEntries(ctx, QueryFilter{StartDate: r.StartDate, EndDate: r.EndDate})
	if err != nil {
		return stats.Grid{}, errors.Wrap(err, "querying homework")
	}
	return stats.HomeworkGrid(r.Dates(), students, Observations(entries)), nil
}
