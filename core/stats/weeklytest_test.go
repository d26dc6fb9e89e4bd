package stats

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{100, "A+"}, {98, "A+"}, {97, "A"},
		{94, "A"}, {93, "A-"},
		{91, "A-"}, {90, "B+"},
		{87, "B+"}, {86, "B"},
		{84, "B"}, {83, "B-"},
		{79, "B-"}, {78, "C+"},
		{75, "C+"}, {74, "C"},
		{72, "C"}, {71, "C-"},
		{64, "C-"}, {63, "D"},
		{56, "D"}, {55, "D-"},
		{49, "D-"}, {48, "F+"},
		{42, "F+"}, {41, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d%%", tt.percentage), func(t *testing.T) {
			assert.Equal(t, tt.want, Grade(tt.percentage))
		})
	}
}

func TestValidateScores(t *testing.T) {
	tests := []struct {
		name      string
		subs      []ScoreSubmission
		wantIndex int
		wantErr   bool
	}{
		{name: "empty batch"},
		{name: "zero is accepted", subs: []ScoreSubmission{{TestID: 1, StudentID: 1, Score: 0}}},
		// known leniency: scores are not checked against the test's max score
		{name: "above max is accepted", subs: []ScoreSubmission{{TestID: 1, StudentID: 1, Score: 250}}},
		{
			name:      "negative is rejected",
			subs:      []ScoreSubmission{{TestID: 1, StudentID: 1, Score: 10}, {TestID: 1, StudentID: 2, Score: -1}},
			wantIndex: 1,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScores(tt.subs)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidInput))
			scoreErr, ok := err.(*ScoreError)
			if assert.True(t, ok) {
				assert.Equal(t, tt.wantIndex, scoreErr.Index)
				assert.Equal(t, tt.subs[tt.wantIndex], scoreErr.Submission)
			}
		})
	}
}

func TestSummarizeTest(t *testing.T) {
	amy := StudentRef{ID: 1, Name: "Amy"}
	bo := StudentRef{ID: 2, Name: "Bo"}
	cai := StudentRef{ID: 3, Name: "Cai"}

	t.Run("two equal scores out of a cohort of three", func(t *testing.T) {
		got := SummarizeTest(20, []ScoreEntry{{Student: amy, Score: 18}, {Student: bo, Score: 18}}, 3)

		assert.Equal(t, 2, got.Scored)
		assert.Equal(t, 3, got.CohortSize)
		assert.Equal(t, 67, got.Completion)
		assert.Equal(t, 90, got.Average)
		// equal ratios keep input order and still get distinct ranks
		assert.Equal(t, []RankedScore{
			{Rank: 1, Student: amy, Score: 18, Percentage: 90, Grade: "B+"},
			{Rank: 2, Student: bo, Score: 18, Percentage: 90, Grade: "B+"},
		}, got.Ranking)
		assert.Empty(t, got.NeedsSupport)
	})

	t.Run("sorted by ratio", func(t *testing.T) {
		got := SummarizeTest(40, []ScoreEntry{
			{Student: amy, Score: 20},
			{Student: bo, Score: 39.5},
			{Student: cai, Score: 0},
		}, 3)

		if assert.Len(t, got.Ranking, 3) {
			assert.Equal(t, []int{2, 1, 3}, []int{got.Ranking[0].Student.ID, got.Ranking[1].Student.ID, got.Ranking[2].Student.ID})
			assert.Equal(t, []int{1, 2, 3}, []int{got.Ranking[0].Rank, got.Ranking[1].Rank, got.Ranking[2].Rank})
			assert.Equal(t, "A+", got.Ranking[0].Grade) // 98.75 rounds to 99
			assert.Equal(t, "F", got.Ranking[2].Grade)
		}
		assert.Equal(t, 100, got.Completion)
		assert.Equal(t, 50, got.Average) // (50 + 98.75 + 0) / 3 = 49.58
		assert.Len(t, got.NeedsSupport, 2)
		top, ok := got.TopPerformer()
		assert.True(t, ok)
		assert.Equal(t, bo, top.Student)
	})

	t.Run("rescored student keeps one entry", func(t *testing.T) {
		got := SummarizeTest(10, []ScoreEntry{{Student: amy, Score: 4}, {Student: bo, Score: 6}, {Student: amy, Score: 9}}, 2)

		assert.Equal(t, 2, got.Scored)
		if assert.Len(t, got.Ranking, 2) {
			assert.Equal(t, amy, got.Ranking[0].Student)
			assert.Equal(t, 9.0, got.Ranking[0].Score)
		}
	})

	t.Run("no scores", func(t *testing.T) {
		got := SummarizeTest(10, nil, 0)

		assert.Zero(t, got.Completion)
		assert.Zero(t, got.Average)
		assert.Empty(t, got.Ranking)
		_, ok := got.TopPerformer()
		assert.False(t, ok)
	})

	t.Run("above max is ranked as is", func(t *testing.T) {
		got := SummarizeTest(10, []ScoreEntry{{Student: amy, Score: 12}}, 1)

		assert.Equal(t, 120, got.Average)
		assert.Equal(t, "A+", got.Ranking[0].Grade)
	})
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, 66.7, ScorePercentage(2, 3))
	assert.Equal(t, 90.0, ScorePercentage(18, 20))
	assert.Equal(t, 0.0, ScorePercentage(5, 0))
}
