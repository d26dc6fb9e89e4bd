package report

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/comment"
	"github.com/jamespares/chinaprof/core/grammar"
	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/core/weeklytest"
)

// Repos are the read sides a report is assembled from.
type Repos struct {
	Students student.Repository
	Homework homework.Repository
	Grammar  grammar.Repository
	Tests    weeklytest.Repository
	Comments comment.Repository
}

type Service struct {
	repos   Repos
	nowFunc func() time.Time
	loc     *time.Location
}

func NewService(repos Repos, loc *time.Location) *Service {
	return &Service{repos: repos, nowFunc: time.Now, loc: loc}
}

// Student generates the report of one student. Nothing is written.
func (svc *Service) Student(ctx context.Context, studentID int) (Report, error) {
	stu, err := svc.repos.Students.GetStudent(ctx, studentID)
	if err != nil {
		return Report{}, err
	}

	now := svc.nowFunc()
	today := core.Today(now, svc.loc)
	in := Input{Student: stu, Today: today}

	in.Homework, err = svc.repos.Homework.QueryEntries(ctx, homework.QueryFilter{
		StudentID: studentID,
		StartDate: today.AddDays(-HomeworkDays),
		EndDate:   today,
	})
	if err != nil {
		return Report{}, errors.Wrap(err, "querying homework")
	}

	if in.Grammar, err = svc.repos.Grammar.QueryEvents(ctx, grammar.QueryFilter{StudentID: studentID}); err != nil {
		return Report{}, errors.Wrap(err, "querying grammar errors")
	}

	if in.Scores, err = svc.repos.Tests.RecentScores(ctx, studentID, weeklytest.RecentScoresLimit); err != nil {
		return Report{}, errors.Wrap(err, "querying scores")
	}

	if in.Comments, err = svc.repos.Comments.QueryComments(ctx, comment.QueryFilter{StudentID: studentID}); err != nil {
		return Report{}, errors.Wrap(err, "querying comments")
	}

	return Synthesize(in, now), nil
}
