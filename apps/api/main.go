package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/jamespares/chinaprof/apps/api/echo"
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
	logsvc "github.com/jamespares/chinaprof/services/logger"
	schedsvc "github.com/jamespares/chinaprof/services/scheduler"
	memcache "github.com/jamespares/chinaprof/storage/cache/memory"
	rediscache "github.com/jamespares/chinaprof/storage/cache/redis"
	"github.com/jamespares/chinaprof/storage/database"
	sqlxrepos "github.com/jamespares/chinaprof/storage/database/sqlx"
)

const cacheBackendRedis = "redis"

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	loc := conf.Location()

	// set up loggers
	logger := logsvc.NewRollbarLogger("API", conf)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger("DB", conf)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up cache
	var cache core.Cache
	if conf.Cache.Backend == cacheBackendRedis {
		rc := rediscache.New(conf.Cache.Redis)
		if err = rc.Ping(context.Background()); err != nil {
			logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
		}
		defer func() { _ = rc.Close() }()
		cache = rc
	} else {
		cache = memcache.New()
	}

	// set up repositories & services
	studentRepo := sqlxrepos.NewStudentRepository(db)
	homeworkRepo := sqlxrepos.NewHomeworkRepository(db)
	grammarRepo := sqlxrepos.NewGrammarRepository(db)
	testRepo := sqlxrepos.NewWeeklyTestRepository(db)
	commentRepo := sqlxrepos.NewCommentRepository(db)

	studentSvc := student.NewService(db, studentRepo)
	dashboardSvc := dashboard.NewService(sqlxrepos.NewDashboardRepository(db), cache, conf.Cache.DashboardTTL, logger, loc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	grammar.InitValidators(validate, translator)

	// =========================================================================
	// Start Scheduler

	if conf.Scheduler.Enabled {
		schedLogger := logsvc.NewRollbarLogger("SCHED", conf)
		sched := schedsvc.New(loc, schedLogger)
		if err = sched.ScheduleDashboardRefresh(conf.Scheduler.DashboardRefresh, dashboardSvc); err != nil {
			logger.Fatal(fmt.Sprintf("scheduling dashboard refresh: %v", err), err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("db").Set(conf.Database.Engine)
	expvar.NewString("cache").Set(conf.Cache.Backend)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,

			StudentSvc:    studentSvc,
			ClassSvc:      class.NewService(sqlxrepos.NewClassRepository(db), loc),
			SubjectSvc:    subject.NewService(sqlxrepos.NewSubjectRepository(db)),
			HomeworkSvc:   homework.NewService(db, homeworkRepo, studentSvc),
			GrammarSvc:    grammar.NewService(grammarRepo, studentSvc, loc),
			WeeklyTestSvc: weeklytest.NewService(db, testRepo),
			CommentSvc:    comment.NewService(commentRepo, loc),
			LessonPlanSvc: lessonplan.NewService(sqlxrepos.NewLessonPlanRepository(db)),
			ReportSvc: report.NewService(report.Repos{
				Students: studentRepo,
				Homework: homeworkRepo,
				Grammar:  grammarRepo,
				Tests:    testRepo,
				Comments: commentRepo,
			}, loc),
			DashboardSvc: dashboardSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf.Database); err != nil {
		return nil, err
	}

	db, err := database.Open(conf.Database)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
