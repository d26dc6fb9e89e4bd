package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/grammar"
	"github.com/jamespares/chinaprof/core/stats"
	"github.com/jamespares/chinaprof/tests"
)

func Test_grammarApi(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateStudent(t, app.studentRepo, "Amy", "7A", "2012-01-05")
	testutil.CreateStudent(t, app.studentRepo, "Bo", "7A", "2011-06-01")
	testutil.CreateSubject(t, app.subjectRepo, "English")

	creates := []httpTest{
		{
			name:     "dated",
			body:     []byte(`{"student_id":1,"subject_id":1,"error_code":"ART-001","date":"2024-03-01"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, grammar.Event{ID: 1, StudentID: 1, SubjectID: 1, ErrorCode: "ART-001", Date: core.MustParseDate("2024-03-01")}),
		},
		{
			name:     "defaults to today",
			body:     []byte(`{"student_id":1,"subject_id":1,"error_code":" ART-001 "}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, grammar.Event{ID: 2, StudentID: 1, SubjectID: 1, ErrorCode: "ART-001", Date: today()}),
		},
		{
			name:     "other student",
			body:     []byte(`{"student_id":2,"subject_id":1,"error_code":"ART-002","date":"2024-03-02"}`),
			wantCode: http.StatusCreated,
		},
		{
			name:     "unknown code",
			body:     []byte(`{"student_id":1,"subject_id":1,"error_code":"XYZ"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"error_code":"unknown error code"}`),
		},
		{
			name:     "missing subject",
			body:     []byte(`{"student_id":1,"error_code":"ART-001"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"subject_id":"this field is required"}`),
		},
		{
			name:     "unknown student",
			body:     []byte(`{"student_id":9,"subject_id":1,"error_code":"ART-001"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: core.ErrInvalidReference.Error()}),
		},
	}
	for _, tt := range creates {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/grammar-errors", tt.body)
			app.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("query by student", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors?student_id=1")
		app.do(req, rec)
		var events []grammar.Event
		decode(t, rec, &events)
		require.Len(t, events, 2)
		assert.Equal(t, 2, events[0].ID) // newest first
	})

	t.Run("analytics", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors/analytics")
		app.do(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var a stats.GrammarAnalysis
		decode(t, rec, &a)
		assert.Equal(t, stats.WindowAll, a.Filter.Window)
		assert.Equal(t, 3, a.TotalErrors)
		assert.Equal(t, 2, a.UniqueStudents)
		assert.Equal(t, []stats.CodeFrequency{
			{Code: "ART-001", Name: "Missing article", Frequency: 2, Percentage: 67, StudentCount: 1},
			{Code: "ART-002", Name: "Wrong article (a/an)", Frequency: 1, Percentage: 33, StudentCount: 1},
		}, a.Codes)
		require.Len(t, a.Students, 2)
		assert.Equal(t, "Amy", a.Students[0].Student.Name)
		assert.Equal(t, "ART-001", a.Students[0].TopErrorCode)
	})

	t.Run("analytics of the week", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors/analytics?window=week&student_id=1")
		app.do(req, rec)
		var a stats.GrammarAnalysis
		decode(t, rec, &a)
		assert.Equal(t, 1, a.TotalErrors)
		assert.Equal(t, 1, a.Filter.StudentID)
	})

	t.Run("unknown window", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors/analytics?window=decade")
		app.do(req, rec)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"window":"must be one of all, week, month or term"}`),
		}, rec)
	})

	t.Run("export", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors/analytics/export?format=csv")
		app.do(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="grammar-errors.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t,
			"Error Code,Error,Frequency,Percentage,Students\n"+
				"ART-001,Missing article,2,67,1\n"+
				"ART-002,Wrong article (a/an),1,33,1\n",
			rec.Body.String())
	})

	t.Run("export unknown format", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors/analytics/export?format=pdf")
		app.do(req, rec)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"format":"format must be csv or xlsx"}`),
		}, rec)
	})

	t.Run("catalog", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/grammar-errors/catalog")
		app.do(req, rec)
		var groups []grammar.CategoryGroup
		decode(t, rec, &groups)
		require.NotEmpty(t, groups)
		assert.Equal(t, grammar.CategoryArticles, groups[0].Category)
		assert.Equal(t, "ART-001", groups[0].Errors[0].Code)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/grammar-errors/1")
		app.do(req, rec)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newRequest(http.MethodDelete, "/v1/grammar-errors/1")
		app.do(req, rec)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: grammar.ErrNotFound.Error()}),
		}, rec)
	})
}
