package exportsvc

import (
	"github.com/jamespares/chinaprof/core/stats"
	"github.com/jamespares/chinaprof/core/weeklytest"
)

// TestResultsTable lists the ranking of a test, best first.
func TestResultsTable(res weeklytest.Results) Table {
	t := Table{
		Header: []string{"Rank", "Student", "Class", "Score", "Max Score", "Percentage", "Grade"},
		Rows:   make([][]interface{}, 0, len(res.Summary.Ranking)),
	}
	for _, r := range res.Summary.Ranking {
		t.Rows = append(t.Rows, []interface{}{
			r.Rank, r.Student.Name, r.Student.Class, r.Score, res.Test.MaxScore, r.Percentage, r.Grade,
		})
	}
	return t
}

// GrammarTable lists error codes by frequency.
func GrammarTable(a stats.GrammarAnalysis) Table {
	t := Table{
		Header: []string{"Error Code", "Error", "Frequency", "Percentage", "Students"},
		Rows:   make([][]interface{}, 0, len(a.Codes)),
	}
	for _, c := range a.Codes {
		t.Rows = append(t.Rows, []interface{}{c.Code, c.Name, c.Frequency, c.Percentage, c.StudentCount})
	}
	return t
}
