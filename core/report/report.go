// Package report builds per-student report cards from already fetched records.
package report

import (
	"time"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/comment"
	"github.com/jamespares/chinaprof/core/grammar"
	"github.com/jamespares/chinaprof/core/homework"
	"github.com/jamespares/chinaprof/core/stats"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/core/weeklytest"
)

const (
	// HomeworkDays is the trailing window of the homework section; today is included.
	HomeworkDays        = 30
	RecentErrorsLimit   = 10
	RecentCommentsLimit = 5
)

// Input is everything a report is computed from.
type Input struct {
	Student  student.Student
	Today    core.Date
	Homework []homework.Entry
	Grammar  []grammar.Event        // newest first
	Scores   []weeklytest.TestScore // newest first
	Comments []comment.Comment      // newest first
}

type (
	HomeworkSection struct {
		PeriodStart          core.Date        `json:"period_start"`
		PeriodEnd            core.Date        `json:"period_end"`
		TotalAssignments     int              `json:"total_assignments"`
		CompletedAssignments int              `json:"completed_assignments"`
		IncompleteCount      int              `json:"incomplete_assignments"`
		UnsetCount           int              `json:"unset_days"`
		CompletionPercentage int              `json:"completion_percentage"`
		RecentHomework       []homework.Entry `json:"recent_homework"`
	}

	GrammarSection struct {
		stats.Breakdown
		RecentErrors []grammar.Event `json:"recent_errors"`
	}

	TestsSection struct {
		TotalTests   int                    `json:"total_tests"`
		AverageScore int                    `json:"average_score"`
		RecentScores []weeklytest.TestScore `json:"recent_scores"`
	}

	CommentsSection struct {
		TotalComments  int               `json:"total_comments"`
		RecentComments []comment.Comment `json:"recent_comments"`
	}

	Report struct {
		Student     student.Student `json:"student"`
		GeneratedAt time.Time       `json:"generated_at"`
		Homework    HomeworkSection `json:"homework"`
		Grammar     GrammarSection  `json:"grammar"`
		Tests       TestsSection    `json:"tests"`
		Comments    CommentsSection `json:"comments"`
	}
)

// Synthesize projects in onto a Report. It performs no I/O.
func Synthesize(in Input, now time.Time) Report {
	dates := stats.TrailingDates(in.Today, HomeworkDays)
	obs := make([]stats.HomeworkObservation, 0, len(in.Homework))
	for _, e := range in.Homework {
		obs = append(obs, e.Observation())
	}
	hw := stats.HomeworkCompletion(dates, obs)

	scores := make([]weeklytest.TestScore, 0, len(in.Scores))
	percentages := make([]float64, 0, len(in.Scores))
	for _, s := range in.Scores {
		s.Percentage = stats.ScorePercentage(s.Score, s.MaxScore)
		scores = append(scores, s)
		percentages = append(percentages, s.Percentage)
	}

	return Report{
		Student:     in.Student,
		GeneratedAt: now.UTC(),
		Homework: HomeworkSection{
			PeriodStart:          dates[0],
			PeriodEnd:            dates[len(dates)-1],
			TotalAssignments:     hw.Total,
			CompletedAssignments: hw.Completed,
			IncompleteCount:      hw.Incomplete,
			UnsetCount:           hw.Unset,
			CompletionPercentage: hw.Percentage,
			RecentHomework:       nonNil(in.Homework),
		},
		Grammar: GrammarSection{
			Breakdown:    stats.GrammarBreakdown(grammar.Stats(in.Grammar)),
			RecentErrors: nonNil(head(in.Grammar, RecentErrorsLimit)),
		},
		Tests: TestsSection{
			TotalTests:   len(scores),
			AverageScore: stats.RoundedMean(percentages),
			RecentScores: scores,
		},
		Comments: CommentsSection{
			TotalComments:  len(in.Comments),
			RecentComments: nonNil(head(in.Comments, RecentCommentsLimit)),
		},
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
