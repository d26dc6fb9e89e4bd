package stats

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ErrInvalidInput is the cause every rejected submission reports through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// NeedsSupportBelow is the percentage under which a student is flagged for support.
const NeedsSupportBelow = 70

type gradeBand struct {
	min   int
	grade string
}

// evaluated top-down, lower bound inclusive
var gradeBands = []gradeBand{
	{98, "A+"},
	{94, "A"},
	{91, "A-"},
	{87, "B+"},
	{84, "B"},
	{79, "B-"},
	{75, "C+"},
	{72, "C"},
	{64, "C-"},
	{56, "D"},
	{49, "D-"},
	{42, "F+"},
}

// Grade maps a rounded percentage to its letter grade.
func Grade(percentage int) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return "F"
}

// ScoreSubmission is one (test, student, score) triple of a bulk submission.
type ScoreSubmission struct {
	TestID    int     `json:"test_id" validate:"required,gt=0"`
	StudentID int     `json:"student_id" validate:"required,gt=0"`
	Score     float64 `json:"score"`
}

// ScoreError rejects a submission; it matches ErrInvalidInput.
type ScoreError struct {
	Index      int
	Submission ScoreSubmission
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf(
		"invalid input: score %v for student %d on test %d cannot be negative",
		e.Submission.Score, e.Submission.StudentID, e.Submission.TestID,
	)
}

func (e *ScoreError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateScores rejects the first negative score. Zero and scores above the
// test's max score are accepted.
func ValidateScores(subs []ScoreSubmission) error {
	for i, sub := range subs {
		if sub.Score < 0 {
			return &ScoreError{Index: i, Submission: sub}
		}
	}
	return nil
}

// ScoreEntry is a recorded score with the student it belongs to.
type ScoreEntry struct {
	Student StudentRef
	Score   float64
}

type RankedScore struct {
	Rank       int        `json:"rank"`
	Student    StudentRef `json:"student"`
	Score      float64    `json:"score"`
	Percentage int        `json:"percentage"`
	Grade      string     `json:"grade"`
}

type TestSummary struct {
	MaxScore     int           `json:"max_score"`
	CohortSize   int           `json:"cohort_size"`
	Scored       int           `json:"scored"`
	Completion   int           `json:"completion"`
	Average      int           `json:"average"`
	Ranking      []RankedScore `json:"ranking"`
	NeedsSupport []RankedScore `json:"needs_support"`
}

// TopPerformer returns the first ranked score, if any.
func (s TestSummary) TopPerformer() (RankedScore, bool) {
	if len(s.Ranking) == 0 {
		return RankedScore{}, false
	}
	return s.Ranking[0], true
}

// SummarizeTest computes completion over the cohort, the average of score/max over scored
// students only, and the ranking. Ranks are 1..n without gaps or repeats: equal ratios keep
// their input order. A student scored twice keeps their first position and last score.
func SummarizeTest(maxScore int, scores []ScoreEntry, cohortSize int) TestSummary {
	entries := dedupeScores(scores)

	ratios := make([]float64, 0, len(entries))
	ranking := make([]RankedScore, 0, len(entries))
	for _, e := range entries {
		ratio := Ratio(e.Score, float64(maxScore))
		ratios = append(ratios, ratio*100)
		pct := round(ratio * 100)
		ranking = append(ranking, RankedScore{
			Student:    e.Student,
			Score:      e.Score,
			Percentage: pct,
			Grade:      Grade(pct),
		})
	}

	// sort on the exact ratio; Percentage is rounded for display only
	idx := make([]int, len(ranking))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return ratios[idx[i]] > ratios[idx[j]] })

	sorted := make([]RankedScore, 0, len(ranking))
	needsSupport := make([]RankedScore, 0)
	for pos, i := range idx {
		r := ranking[i]
		r.Rank = pos + 1
		sorted = append(sorted, r)
		if r.Percentage < NeedsSupportBelow {
			needsSupport = append(needsSupport, r)
		}
	}

	return TestSummary{
		MaxScore:     maxScore,
		CohortSize:   cohortSize,
		Scored:       len(entries),
		Completion:   Percentage(len(entries), cohortSize),
		Average:      RoundedMean(ratios),
		Ranking:      sorted,
		NeedsSupport: needsSupport,
	}
}

func dedupeScores(scores []ScoreEntry) []ScoreEntry {
	pos := make(map[int]int, len(scores))
	entries := make([]ScoreEntry, 0, len(scores))
	for _, s := range scores {
		if i, ok := pos[s.Student.ID]; ok {
			entries[i].Score = s.Score
			continue
		}
		pos[s.Student.ID] = len(entries)
		entries = append(entries, s)
	}
	return entries
}

// ScorePercentage is score/max as a percentage rounded to one decimal.
func ScorePercentage(score float64, maxScore int) float64 {
	return RoundTo(Ratio(score, float64(maxScore))*100, 1)
}
