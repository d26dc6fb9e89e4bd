package weeklytest

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

// RecentScoresLimit is how many of a student's latest scores a report shows.
const RecentScoresLimit = 10

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("weekly test not found")
	ErrInvalidScore = stats.ErrInvalidInput
	ErrUnknownTest  = errors.New("weekly test does not exist")
)

type (
	Repository interface {
		CreateTest(ctx context.Context, t Test, exec ...core.DBExecutor) (Test, error)
		// QueryTests lists tests newest first.
		QueryTests(ctx context.Context, exec ...core.DBExecutor) ([]Test, error)
		GetTest(ctx context.Context, id int, exec ...core.DBExecutor) (Test, error)
		DeleteTest(ctx context.Context, id int, exec ...core.DBExecutor) error

		// UpsertScore records the score of (test, student), replacing any previous one.
		UpsertScore(ctx context.Context, s Score, exec ...core.DBExecutor) (Score, error)
		// QueryScores lists the scores of a test ordered by student name.
		QueryScores(ctx context.Context, testID int, exec ...core.DBExecutor) ([]StudentScore, error)
