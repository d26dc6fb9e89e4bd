package stats

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/jamespares/chinaprof/core"
)

var testNames = CodeNamer(func(code string) string {
	return map[string]string{
		"ART-001": "Missing article",
		"SVA-001": "Singular/plural mismatch",
	}[code]
})

func ev(studentID int, code, date string) GrammarEvent {
	return GrammarEvent{StudentID: studentID, Code: code, Date: core.MustParseDate(date)}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    Window
		wantErr error
	}{
		{in: "", want: WindowAll},
		{in: "all", want: WindowAll},
		{in: " Week ", want: WindowWeek},
		{in: "month", want: WindowMonth},
		{in: "term", want: WindowTerm},
		{in: "year", wantErr: ErrUnknownWindow},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWindow(tt.in)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterGrammarEvents(t *testing.T) {
	now := time.Date(2024, 3, 31, 15, 30, 0, 0, time.UTC)
	events := []GrammarEvent{
		ev(1, "ART-001", "2024-03-31"),
		ev(1, "ART-001", "2024-03-24"), // exactly 7 days back
		ev(2, "SVA-001", "2024-03-23"),
		ev(2, "SVA-001", "2024-03-01"),  // exactly 30 days back
		ev(1, "PREP-001", "2024-01-01"), // exactly 90 days back
		ev(1, "PREP-001", "2023-12-31"),
	}

	tests := []struct {
		name   string
		filter GrammarFilter
		want   int
	}{
		{name: "all time", filter: GrammarFilter{Window: WindowAll}, want: 6},
		{name: "week", filter: GrammarFilter{Window: WindowWeek}, want: 2},
		{name: "month", filter: GrammarFilter{Window: WindowMonth}, want: 4},
		{name: "term", filter: GrammarFilter{Window: WindowTerm}, want: 5},
		{name: "student", filter: GrammarFilter{StudentID: 2, Window: WindowAll}, want: 2},
		{name: "student and week", filter: GrammarFilter{StudentID: 2, Window: WindowWeek}, want: 0},
		{name: "unknown student", filter: GrammarFilter{StudentID: 42}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterGrammarEvents(events, tt.filter, now)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestRankErrorCodes(t *testing.T) {
	events := []GrammarEvent{
		ev(1, "SVA-001", "2024-03-01"),
		ev(2, "ART-001", "2024-03-01"),
		ev(2, "ART-001", "2024-03-02"),
		ev(3, "SVA-001", "2024-03-02"),
		ev(3, "XYZ", "2024-03-03"),
	}

	got := RankErrorCodes(events, testNames)

	assert.Equal(t, []CodeFrequency{
		{Code: "SVA-001", Name: "Singular/plural mismatch", Frequency: 2, Percentage: 40, StudentCount: 2},
		{Code: "ART-001", Name: "Missing article", Frequency: 2, Percentage: 40, StudentCount: 1},
		{Code: "XYZ", Name: "XYZ", Frequency: 1, Percentage: 20, StudentCount: 1},
	}, got)

	var sum int
	for _, c := range got {
		sum += c.Frequency
		assert.Equal(t, Percentage(c.Frequency, len(events)), c.Percentage)
	}
	assert.Equal(t, len(events), sum)
}

func TestRankErrorCodes_empty(t *testing.T) {
	got := RankErrorCodes(nil, testNames)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankStudentErrors(t *testing.T) {
	roster := []StudentRef{
		{ID: 1, Name: "Amy", Class: "7A"},
		{ID: 2, Name: "Bo", Class: "7A"},
		{ID: 3, Name: "Cai", Class: "7B"},
	}
	events := []GrammarEvent{
		ev(3, "SVA-001", "2024-03-01"),
		ev(3, "ART-001", "2024-03-01"),
		ev(3, "SVA-001", "2024-03-02"),
		ev(3, "ART-001", "2024-03-02"),
		ev(1, "XYZ", "2024-03-02"),
		ev(9, "ART-001", "2024-03-02"),
	}

	got := RankStudentErrors(events, roster, testNames)

	if assert.Len(t, got, 3) {
		assert.Equal(t, StudentErrors{
			Student:      roster[2],
			TotalErrors:  4,
			TopErrorCode: "ART-001", // tie with SVA-001 resolves lexically
			TopError:     "Missing article",
			Breakdown:    map[string]int{"SVA-001": 2, "ART-001": 2},
		}, got[0])

		// equal totals keep roster order, unknown students come last
		assert.Equal(t, 1, got[1].Student.ID)
		assert.Equal(t, "XYZ", got[1].TopError)
		assert.Equal(t, StudentRef{ID: 9}, got[2].Student)
	}
}

func TestTopCode(t *testing.T) {
	tests := []struct {
		name      string
		breakdown map[string]int
		want      string
	}{
		{name: "empty", breakdown: map[string]int{}, want: ""},
		{name: "single", breakdown: map[string]int{"WO-001": 1}, want: "WO-001"},
		{name: "highest count", breakdown: map[string]int{"ART-001": 1, "WO-001": 3}, want: "WO-001"},
		{name: "tie", breakdown: map[string]int{"TENSE-002": 2, "PREP-001": 2, "SVA-001": 2}, want: "PREP-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 10; i++ { // map iteration order varies between runs
				assert.Equal(t, tt.want, TopCode(tt.breakdown))
			}
		})
	}
}

func TestAnalyzeGrammar(t *testing.T) {
	now := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)
	roster := []StudentRef{{ID: 1, Name: "Amy"}, {ID: 2, Name: "Bo"}}
	events := []GrammarEvent{
		ev(1, "ART-001", "2024-03-30"),
		ev(1, "ART-001", "2024-03-29"),
		ev(2, "SVA-001", "2024-03-28"),
		ev(2, "SVA-001", "2024-01-01"),
	}

	got := AnalyzeGrammar(events, roster, GrammarFilter{Window: WindowWeek}, now, testNames)

	assert.Equal(t, 3, got.TotalErrors)
	assert.Equal(t, 2, got.UniqueStudents)
	assert.Equal(t, 2, got.AveragePerStudent) // round(3 / 2)
	if assert.Len(t, got.Codes, 2) {
		assert.Equal(t, "ART-001", got.Codes[0].Code)
		assert.Equal(t, 67, got.Codes[0].Percentage) // filtered total is the denominator
		assert.Equal(t, 33, got.Codes[1].Percentage)
	}
	assert.Len(t, got.Students, 2)

	empty := AnalyzeGrammar(nil, roster, GrammarFilter{}, now, testNames)
	assert.Equal(t, WindowAll, empty.Filter.Window)
	assert.Zero(t, empty.TotalErrors)
	assert.Zero(t, empty.AveragePerStudent)
	assert.Empty(t, empty.Codes)
	assert.Empty(t, empty.Students)
}

func TestGrammarBreakdown(t *testing.T) {
	got := GrammarBreakdown([]GrammarEvent{
		ev(1, "ART-001", "2024-03-30"),
		ev(1, "WO-002", "2024-03-29"),
		ev(1, "ART-001", "2024-03-28"),
	})
	assert.Equal(t, Breakdown{Total: 3, Counts: map[string]int{"ART-001": 2, "WO-002": 1}}, got)
	assert.Equal(t, Breakdown{Counts: map[string]int{}}, GrammarBreakdown(nil))
}
