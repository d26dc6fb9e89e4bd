package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		StudentSvc    *student.Service
		ClassSvc      *class.Service
		SubjectSvc    *subject.Service
		HomeworkSvc   *homework.Service
		GrammarSvc    *grammar.Service
		WeeklyTestSvc *weeklytest.Service
		CommentSvc    *comment.Service
		LessonPlanSvc *lessonplan.Service
		ReportSvc     *report.Service
		DashboardSvc  *dashboard.Service
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(ctx context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	if s.deps.DashboardSvc != nil {
		v1.Use(invalidateDashboardMiddleware(s.deps.DashboardSvc, s.deps.Logger))
	}

	registerStudentAPI(v1, s.deps.StudentSvc, s.deps.Validate)
	registerClassAPI(v1, s.deps.ClassSvc, s.deps.StudentSvc, s.deps.Validate)
	registerSubjectAPI(v1, s.deps.SubjectSvc, s.deps.Validate)
	registerHomeworkAPI(v1, s.deps.HomeworkSvc, s.deps.Validate)
	registerGrammarAPI(v1, s.deps.GrammarSvc, s.deps.Validate)
	registerWeeklyTestAPI(v1, s.deps.WeeklyTestSvc, s.deps.Validate)
	registerCommentAPI(v1, s.deps.CommentSvc, s.deps.Validate)
	registerLessonPlanAPI(v1, s.deps.LessonPlanSvc, s.deps.Validate)
	registerReportAPI(v1, s.deps.ReportSvc)
	registerDashboardAPI(v1, s.deps.DashboardSvc)
}

func (s *server) Start() {
	s.deps.Logger.Info("API listening on " + s.deps.Conf.Server.Host)
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
