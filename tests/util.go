// Package testutil provides a migrated test database and record fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/class"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/core/subject"
	"github.com/jamespares/chinaprof/core/weeklytest"
	"github.com/jamespares/chinaprof/storage/database"
)

// OpenDB returns a fresh, migrated in-memory SQLite database closed at the end of the test.
func OpenDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Open(core.DatabaseConfig{Engine: database.EngineSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	return db
}

func CreateStudent(t testing.TB, repo student.Repository, name, label, dob string, classID ...int) student.Student {
	t.Helper()
	s := student.Student{Name: name, Class: label, DOB: core.MustParseDate(dob)}
	if len(classID) > 0 {
		s.ClassID.SetValid(classID[0])
	}
	s, err := repo.CreateStudent(context.Background(), s)
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return s
}

func CreateClass(t testing.TB, repo class.Repository, name string, yearLevel ...int) class.Class {
	t.Helper()
	now := time.Now().UTC()
	c := class.Class{Name: name, CreatedAt: now, UpdatedAt: now}
	if len(yearLevel) > 0 {
		c.YearLevel.SetValid(yearLevel[0])
	}
	c, err := repo.CreateClass(context.Background(), c)
	if err != nil {
		t.Fatalf("CreateClass(): %v", err)
	}
	return c
}

func CreateSubject(t testing.TB, repo subject.Repository, name string) subject.Subject {
	t.Helper()
	s, err := repo.CreateSubject(context.Background(), subject.Subject{Name: name, TeacherID: subject.DefaultTeacherID})
	if err != nil {
		t.Fatalf("CreateSubject(): %v", err)
	}
	return s
}

func CreateTest(t testing.TB, repo weeklytest.Repository, name string, maxScore int, createdAt ...time.Time) weeklytest.Test {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	test, err := repo.CreateTest(context.Background(), weeklytest.Test{Name: name, MaxScore: maxScore, CreatedAt: tstamp})
	if err != nil {
		t.Fatalf("CreateTest(): %v", err)
	}
	return test
}

func CreateScore(t testing.TB, repo weeklytest.Repository, testID, studentID int, score float64) weeklytest.Score {
	t.Helper()
	s, err := repo.UpsertScore(context.Background(), weeklytest.Score{TestID: testID, StudentID: studentID, Score: score})
	if err != nil {
		t.Fatalf("CreateScore(): %v", err)
	}
	return s
}
