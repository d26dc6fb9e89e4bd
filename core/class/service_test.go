package class

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamespares/chinaprof/core"
)

type repoStub struct {
	Repository // unimplemented methods panic

	class     Class
	students  int
	completed int
	observed  int
	since     core.Date
	scores    []ScoreOfMax
}

func (r *repoStub) GetClass(_ context.Context, id int, _ ...core.DBExecutor) (Class, error) {
	if id != r.class.ID {
		return Class{}, ErrNotFound
	}
	return r.class, nil
}

func (r *repoStub) CountStudents(context.Context, int, ...core.DBExecutor) (int, error) {
	return r.students, nil
}

func (r *repoStub) CountHomework(_ context.Context, _ int, since core.Date, _ ...core.DBExecutor) (int, int, error) {
	r.since = since
	return r.completed, r.observed, nil
}

func (r *repoStub) RecentScores(_ context.Context, _ int, tests int, _ ...core.DBExecutor) ([]ScoreOfMax, error) {
	return r.scores, nil
}

func TestService_Stats(t *testing.T) {
	repo := &repoStub{
		class:     Class{ID: 4, Name: "7A"},
		students:  3,
		completed: 5,
		observed:  6,
		scores:    []ScoreOfMax{{Score: 18, MaxScore: 20}, {Score: 7, MaxScore: 10}, {Score: 0, MaxScore: 0}},
	}
	svc := NewService(repo, time.UTC)
	svc.nowFunc = func() time.Time { return time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC) }

	got, err := svc.Stats(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, Stats{
		ClassID:                4,
		StudentCount:           3,
		HomeworkCompletionRate: 83,
		AverageTestScore:       53, // (90 + 70 + 0) / 3
	}, got)
	assert.Equal(t, core.MustParseDate("2024-03-01"), repo.since)

	_, err = svc.Stats(context.Background(), 5)
	assert.Equal(t, ErrNotFound, err)
}

func TestService_Stats_empty(t *testing.T) {
	svc := NewService(&repoStub{class: Class{ID: 1}}, time.UTC)

	got, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{ClassID: 1}, got)
}

func TestUpdateClass_apply(t *testing.T) {
	orig := Class{ID: 1, Name: "7A"}
	name, desc := "7B", "Morning group"

	got := UpdateClass{Name: &name, Description: &desc, YearLevel: core.IntPtr(7)}.apply(orig)

	assert.Equal(t, "7B", got.Name)
	assert.Equal(t, "Morning group", got.Description.String)
	assert.True(t, got.Description.Valid)
	assert.Equal(t, 7, got.YearLevel.Int)
	assert.False(t, got.TeacherID.Valid)
}
