package stats

import "github.com/jamespares/chinaprof/core"

// HomeworkObservation is a recorded homework status for one day.
// A day without an observation is "unset".
type HomeworkObservation struct {
	Date      core.Date
	Completed bool
}

// Completion summarizes one student's homework over a list of days.
// Percentage divides by the observed days (Completed + Incomplete), never by Total.
type Completion struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
	Unset      int `json:"unset"`
	Percentage int `json:"percentage"`
}

func (c Completion) Observed() int {
	return c.Completed + c.Incomplete
}

// HomeworkCompletion aggregates observations over dates.
// Observations outside dates are ignored; for a repeated day the last observation wins.
func HomeworkCompletion(dates []core.Date, observations []HomeworkObservation) Completion {
	_, c := completion(dates, observations)
	return c
}

func completion(dates []core.Date, observations []HomeworkObservation) (map[core.Date]bool, Completion) {
	inRange := make(map[core.Date]struct{}, len(dates))
	for _, d := range dates {
		inRange[d] = struct{}{}
	}

	statuses := make(map[core.Date]bool, len(observations))
	for _, obs := range observations {
		if _, ok := inRange[obs.Date]; ok {
			statuses[obs.Date] = obs.Completed
		}
	}

	var c Completion
	seen := make(map[core.Date]struct{}, len(dates))
	for _, d := range dates {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		c.Total++

		completed, observed := statuses[d]
		switch {
		case !observed:
			c.Unset++
		case completed:
			c.Completed++
		default:
			c.Incomplete++
		}
	}
	c.Percentage = Percentage(c.Completed, c.Observed())
	return statuses, c
}

type (
	// GridCell is one student/day cell; Status is nil when unset.
	GridCell struct {
		Date   core.Date `json:"date"`
		Status *bool     `json:"status"`
	}

	GridRow struct {
		Student  StudentRef `json:"student"`
		Homework []GridCell `json:"homework"`
		Stats    Completion `json:"stats"`
	}

	GridSummary struct {
		TotalStudents     int `json:"total_students"`
		AverageCompletion int `json:"average_completion"`
		TotalCompleted    int `json:"total_completed"`
		TotalEntries      int `json:"total_entries"`
		OverallCompletion int `json:"overall_completion"`
	}

	Grid struct {
		Dates    []core.Date `json:"dates"`
		Students []GridRow   `json:"students"`
		Summary  GridSummary `json:"summary"`
	}
)

// HomeworkGrid applies HomeworkCompletion to every student independently.
// observations is keyed by student id. The summary carries the rounded mean of the
// per-student percentages and the cohort-wide completed / observed figure.
func HomeworkGrid(dates []core.Date, students []StudentRef, observations map[int][]HomeworkObservation) Grid {
	grid := Grid{
		Dates:    dates,
		Students: make([]GridRow, 0, len(students)),
	}
	if grid.Dates == nil {
		grid.Dates = []core.Date{}
	}

	percentages := make([]float64, 0, len(students))
	for _, s := range students {
		statuses, c := completion(dates, observations[s.ID])

		cells := make([]GridCell, 0, len(dates))
		for _, d := range dates {
			cell := GridCell{Date: d}
			if completed, ok := statuses[d]; ok {
				status := completed
				cell.Status = &status
			}
			cells = append(cells, cell)
		}

		grid.Students = append(grid.Students, GridRow{Student: s, Homework: cells, Stats: c})
		grid.Summary.TotalCompleted += c.Completed
		grid.Summary.TotalEntries += c.Observed()
		percentages = append(percentages, float64(c.Percentage))
	}

	grid.Summary.TotalStudents = len(students)
	grid.Summary.AverageCompletion = RoundedMean(percentages)
	grid.Summary.OverallCompletion = Percentage(grid.Summary.TotalCompleted, grid.Summary.TotalEntries)
	return grid
}

// TrailingDates returns the days from `days` days before today up to today, inclusive.
func TrailingDates(today core.Date, days int) []core.Date {
	return core.DateRange(today.AddDays(-days), today)
}
