package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/core/stats"
	"github.com/jamespares/chinaprof/tests"
)

func Test_homeworkApi(t *testing.T) {
	app := newTestApp(t)
	amy := testutil.CreateStudent(t, app.studentRepo, "Amy", "7A", "2012-01-05")
	bo := testutil.CreateStudent(t, app.studentRepo, "Bo", "7A", "2011-06-01")
	d := core.MustParseDate

	t.Run("submit", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/homework", []byte(`{"entries":[
			{"student_id":1,"date":"2024-03-01","status":true},
			{"student_id":1,"date":"2024-03-02","status":false},
			{"student_id":2,"date":"2024-03-01","status":true}
		]}`))
		app.do(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var entries []homework.Entry
		decode(t, rec, &entries)
		assert.Len(t, entries, 3)
	})

	t.Run("resubmit replaces the status", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/homework", []byte(`{"entries":[{"student_id":1,"date":"2024-03-02","status":true}]}`))
		app.do(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		req, rec = newRequest(http.MethodGet, "/v1/homework?student_id=1&start_date=2024-03-02&end_date=2024-03-02")
		app.do(req, rec)
		var entries []homework.Entry
		decode(t, rec, &entries)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Status)
	})

	invalidBatches := []httpTest{
		{
			name:     "missing status",
			body:     []byte(`{"entries":[{"student_id":1,"date":"2024-04-01","status":true},{"student_id":2,"date":"2024-04-01"}]}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"status":"this field is required"}`),
		},
		{
			name:     "empty batch",
			body:     []byte(`{"entries":[]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown student",
			body:     []byte(`{"entries":[{"student_id":1,"date":"2024-04-01","status":true},{"student_id":99,"date":"2024-04-01","status":true}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: core.ErrInvalidReference.Error()}),
		},
	}
	for _, tt := range invalidBatches {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/homework", tt.body)
			app.do(req, rec)
			checkCodeAndData(t, tt, rec)

			// nothing of the batch is written
			req, rec = newRequest(http.MethodGet, "/v1/homework?start_date=2024-04-01&end_date=2024-04-01")
			app.do(req, rec)
			checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)
		})
	}

	t.Run("grid", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/homework/grid?start_date=2024-03-01&end_date=2024-03-03")
		app.do(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var grid stats.Grid
		decode(t, rec, &grid)
		assert.Equal(t, []core.Date{d("2024-03-01"), d("2024-03-02"), d("2024-03-03")}, grid.Dates)
		require.Len(t, grid.Students, 2)

		row := grid.Students[0]
		assert.Equal(t, amy.Ref(), row.Student)
		assert.Equal(t, 2, row.Stats.Completed)
		assert.Equal(t, 1, row.Stats.Unset)
		assert.Equal(t, 100, row.Stats.Percentage)
		require.Len(t, row.Homework, 3)
		assert.Nil(t, row.Homework[2].Status)

		assert.Equal(t, bo.Ref(), grid.Students[1].Student)
		assert.Equal(t, 1, grid.Students[1].Stats.Completed)

		assert.Equal(t, stats.GridSummary{
			TotalStudents:     2,
			AverageCompletion: 100,
			TotalCompleted:    3,
			TotalEntries:      3,
			OverallCompletion: 100,
		}, grid.Summary)
	})

	badRanges := []httpTest{
		{
			name:     "reversed",
			path:     "/v1/homework/grid?start_date=2024-03-03&end_date=2024-03-01",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"end_date":"must not be before start_date"}`),
		},
		{
			name:     "missing",
			path:     "/v1/homework/grid",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"start_date":"this field is required","end_date":"this field is required"}`),
		},
		{name: "malformed", path: "/v1/homework/grid?start_date=03/01/2024&end_date=2024-03-01", wantCode: http.StatusBadRequest},
	}
	for _, tt := range badRanges {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("clear cell", func(t *testing.T) {
		for i := 0; i < 2; i++ { // clearing an unset cell is a no-op
			req, rec := newRequest(http.MethodDelete, "/v1/homework", []byte(`{"student_id":1,"date":"2024-03-01"}`))
			app.do(req, rec)
			assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		}

		req, rec := newRequest(http.MethodGet, "/v1/homework?student_id=1")
		app.do(req, rec)
		var entries []homework.Entry
		decode(t, rec, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, d("2024-03-02"), entries[0].Date)
	})

	t.Run("wipe", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/homework/wipe")
		app.do(req, rec)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`{"deleted":2}`)}, rec)

		req, rec = newRequest(http.MethodGet, "/v1/homework")
		app.do(req, rec)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)
	})
}
