package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	. "github.com/jamespares/chinaprof/apps/api/echo"
	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/class"
	"github.com/jamespares/chinaprof/core/comment"
	"github.com/jamespares/chinaprof/core/dashboard"
	"github.com/jamespares/chinaprof/core/grammar"
	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/core/lessonplan"
	"github.com/jamespares/chinaprof/core/report"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/core/subject"
	"github.com/jamespares/chinaprof/core/weeklytest"
	memcache "github.com/jamespares/chinaprof/storage/cache/memory"
	sqlxrepos "github.com/jamespares/chinaprof/storage/database/sqlx"
	"github.com/jamespares/chinaprof/tests"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// testApp is a server over a fresh database, with the repositories fixtures are created through.
type testApp struct {
	Server
	db          *sqlx.DB
	studentRepo student.Repository
	classRepo   class.Repository
	subjectRepo subject.Repository
	testRepo    weeklytest.Repository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.OpenDB(t)
	loc := time.UTC
	logger := nopLogger{}

	conf := &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "ChinaProf",
		Server:   core.ServerConfig{DisableReqLogs: true},
		Cache:    core.CacheConfig{Backend: "memory", DashboardTTL: time.Minute},
	}

	app := &testApp{
		db:          db,
		studentRepo: sqlxrepos.NewStudentRepository(db),
		classRepo:   sqlxrepos.NewClassRepository(db),
		subjectRepo: sqlxrepos.NewSubjectRepository(db),
		testRepo:    sqlxrepos.NewWeeklyTestRepository(db),
	}
	homeworkRepo := sqlxrepos.NewHomeworkRepository(db)
	grammarRepo := sqlxrepos.NewGrammarRepository(db)
	commentRepo := sqlxrepos.NewCommentRepository(db)

	studentSvc := student.NewService(db, app.studentRepo)
	app.Server = NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,

		StudentSvc:    studentSvc,
		ClassSvc:      class.NewService(app.classRepo, loc),
		SubjectSvc:    subject.NewService(app.subjectRepo),
		HomeworkSvc:   homework.NewService(db, homeworkRepo, studentSvc),
		GrammarSvc:    grammar.NewService(grammarRepo, studentSvc, loc),
		WeeklyTestSvc: weeklytest.NewService(db, app.testRepo),
		CommentSvc:    comment.NewService(commentRepo, loc),
		LessonPlanSvc: lessonplan.NewService(sqlxrepos.NewLessonPlanRepository(db)),
		ReportSvc: report.NewService(report.Repos{
			Students: app.studentRepo,
			Homework: homeworkRepo,
			Grammar:  grammarRepo,
			Tests:    app.testRepo,
			Comments: commentRepo,
		}, loc),
		DashboardSvc: dashboard.NewService(sqlxrepos.NewDashboardRepository(db), memcache.New(), conf.Cache.DashboardTTL, logger, loc),
	})
	return app
}

func (app *testApp) do(req *http.Request, rec *httptest.ResponseRecorder) {
	app.ServeHTTP(rec, req)
}

func today() core.Date {
	return core.Today(time.Now(), time.UTC)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

// checkCodeAndData compares the status code, and the JSON body when tt.wantData is set.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if assert.NoError(t, err, "jsonBytesEqual() failed to compare") {
		assert.True(t, ok, "data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode(): %v; body %s", err, rec.Body.String())
	}
}
