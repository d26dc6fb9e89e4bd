package main

import (
	"fmt"
	"os"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/core/weeklytest"
	logsvc "github.com/jamespares/chinaprof/services/logger"
	"github.com/jamespares/chinaprof/storage/database"
	sqlxrepos "github.com/jamespares/chinaprof/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger("ADMIN", conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	validate, _ := core.NewValidator()
	studentSvc := student.NewService(db, sqlxrepos.NewStudentRepository(db))

	// start CLI
	cli := commandLine{
		db:          db,
		out:         os.Stdout,
		validate:    validate,
		studentSvc:  studentSvc,
		homeworkSvc: homework.NewService(db, sqlxrepos.NewHomeworkRepository(db), studentSvc),
		testSvc:     weeklytest.NewService(db, sqlxrepos.NewWeeklyTestRepository(db)),
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
