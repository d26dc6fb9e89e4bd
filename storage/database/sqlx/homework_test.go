package sqlxrepos_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/storage/database/sqlx"
	"github.com/jamespares/chinaprof/tests"
)

func Test_homeworkRepository(t *testing.T) {
	ctx := context.Background()
	d := core.MustParseDate
	db := testutil.OpenDB(t)
	repo := sqlxrepos.NewHomeworkRepository(db)
	stuRepo := sqlxrepos.NewStudentRepository(db)

	amy := testutil.CreateStudent(t, stuRepo, "Amy", "7A", "2012-01-05")
	bob := testutil.CreateStudent(t, stuRepo, "Bob", "7A", "2012-02-05")

	for _, e := range []homework.Entry{
		{StudentID: amy.ID, Date: d("2024-03-01"), Status: false},
		{StudentID: amy.ID, Date: d("2024-03-02"), Status: true},
		{StudentID: bob.ID, Date: d("2024-03-02"), Status: true},
		{StudentID: bob.ID, Date: d("2024-03-05"), Status: false},
	} {
		_, err := repo.UpsertEntry(ctx, e)
		require.NoError(t, err)
	}

	t.Run("upsert replaces the status", func(t *testing.T) {
		first, err := repo.QueryEntries(ctx, homework.QueryFilter{StudentID: amy.ID, StartDate: d("2024-03-01"), EndDate: d("2024-03-01")})
		require.NoError(t, err)
		require.Len(t, first, 1)

		e, err := repo.UpsertEntry(ctx, homework.Entry{StudentID: amy.ID, Date: d("2024-03-01"), Status: true})
		require.NoError(t, err)
		assert.Equal(t, first[0].ID, e.ID)

		got, err := repo.QueryEntries(ctx, homework.QueryFilter{StudentID: amy.ID, StartDate: d("2024-03-01"), EndDate: d("2024-03-01")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Status)
	})

	tests := []struct {
		name   string
		filter homework.QueryFilter
		want   []homework.Entry
	}{
		{
			name:   "range is inclusive and newest first",
			filter: homework.QueryFilter{StartDate: d("2024-03-02"), EndDate: d("2024-03-05")},
			want: []homework.Entry{
				{StudentID: bob.ID, Date: d("2024-03-05"), Status: false},
				{StudentID: amy.ID, Date: d("2024-03-02"), Status: true},
				{StudentID: bob.ID, Date: d("2024-03-02"), Status: true},
			},
		},
		{
			name:   "by student",
			filter: homework.QueryFilter{StudentID: bob.ID},
			want: []homework.Entry{
				{StudentID: bob.ID, Date: d("2024-03-05"), Status: false},
				{StudentID: bob.ID, Date: d("2024-03-02"), Status: true},
			},
		},
		{
			name:   "open ended",
			filter: homework.QueryFilter{EndDate: d("2024-03-01")},
			want:   []homework.Entry{{StudentID: amy.ID, Date: d("2024-03-01"), Status: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryEntries(ctx, tt.filter)
			require.NoError(t, err)
			for i := range got {
				got[i].ID = 0
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown student", func(t *testing.T) {
		_, err := repo.UpsertEntry(ctx, homework.Entry{StudentID: 999, Date: d("2024-03-01"), Status: true})
		assert.Equal(t, core.ErrInvalidReference, errors.Cause(err))
	})

	t.Run("clear a cell", func(t *testing.T) {
		require.NoError(t, repo.DeleteEntry(ctx, bob.ID, d("2024-03-05")))
		require.NoError(t, repo.DeleteEntry(ctx, bob.ID, d("2024-03-05")), "clearing an unset cell")

		got, err := repo.QueryEntries(ctx, homework.QueryFilter{StudentID: bob.ID})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("entries follow their student", func(t *testing.T) {
		require.NoError(t, stuRepo.DeleteStudent(ctx, bob.ID))
		got, err := repo.QueryEntries(ctx, homework.QueryFilter{StudentID: bob.ID})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("wipe", func(t *testing.T) {
		n, err := repo.DeleteAllEntries(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		got, err := repo.QueryEntries(ctx, homework.QueryFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
