package stats

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
)

// Window is a trailing time window for grammar analytics.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowTerm  Window = "term"
)

var ErrUnknownWindow = errors.New("unknown time window")

var windowDays = map[Window]int{
	WindowAll:   0,
	WindowWeek:  7,
	WindowMonth: 30,
	WindowTerm:  90,
}

// ParseWindow maps "", "all", "week", "month" and "term" to a Window.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return WindowAll, nil
	}
	w := Window(core.CleanString(s, true /* lower */))
	if _, ok := windowDays[w]; !ok {
		return "", errors.Wrapf(ErrUnknownWindow, "%q", s)
	}
	return w, nil
}

// Days is the window length; 0 means no filtering.
func (w Window) Days() int {
	return windowDays[w]
}

// Cutoff is the first day included by the window, relative to now's calendar day.
// ok is false for WindowAll.
func (w Window) Cutoff(now time.Time) (cutoff core.Date, ok bool) {
	days := w.Days()
	if days == 0 {
		return core.Date{}, false
	}
	return core.DateOf(now).AddDays(-days), true
}

// GrammarEvent is one logged grammar error.
type GrammarEvent struct {
	StudentID int
	Code      string
	Date      core.Date
}

// GrammarFilter narrows events; a zero StudentID keeps every student.
type GrammarFilter struct {
	StudentID int    `json:"student_id,omitempty"`
	Window    Window `json:"window"`
}

// CodeNamer translates an error code into its display name.
type CodeNamer func(code string) string

func (n CodeNamer) name(code string) string {
	if n == nil {
		return code
	}
	if name := n(code); name != "" {
		return name
	}
	return code
}

// FilterGrammarEvents keeps events matching the student and falling on or after the window cutoff.
func FilterGrammarEvents(events []GrammarEvent, filter GrammarFilter, now time.Time) []GrammarEvent {
	cutoff, windowed := filter.Window.Cutoff(now)

	filtered := make([]GrammarEvent, 0, len(events))
	for _, e := range events {
		if filter.StudentID != 0 && e.StudentID != filter.StudentID {
			continue
		}
		if windowed && e.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

type CodeFrequency struct {
	Code         string `json:"error_code"`
	Name         string `json:"error_name"`
	Frequency    int    `json:"frequency"`
	Percentage   int    `json:"percentage"`
	StudentCount int    `json:"student_count"`
}

// RankErrorCodes counts events per code, sorted by frequency descending.
// Codes with equal frequency keep the order in which they were first seen.
func RankErrorCodes(events []GrammarEvent, namer CodeNamer) []CodeFrequency {
	type tally struct {
		count    int
		students map[int]struct{}
	}

	order := make([]string, 0)
	tallies := make(map[string]*tally)
	for _, e := range events {
		t, ok := tallies[e.Code]
		if !ok {
			t = &tally{students: make(map[int]struct{})}
			tallies[e.Code] = t
			order = append(order, e.Code)
		}
		t.count++
		t.students[e.StudentID] = struct{}{}
	}

	ranking := make([]CodeFrequency, 0, len(order))
	for _, code := range order {
		t := tallies[code]
		ranking = append(ranking, CodeFrequency{
			Code:         code,
			Name:         namer.name(code),
			Frequency:    t.count,
			Percentage:   Percentage(t.count, len(events)),
			StudentCount: len(t.students),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Frequency > ranking[j].Frequency })
	return ranking
}

type StudentErrors struct {
	Student      StudentRef     `json:"student"`
	TotalErrors  int            `json:"total_errors"`
	TopErrorCode string         `json:"top_error_code"`
	TopError     string         `json:"top_error"`
	Breakdown    map[string]int `json:"error_breakdown"`
}

// RankStudentErrors totals events per student, sorted by total descending.
// Students are visited in roster order, then any student only present in events.
// Students without errors are left out. The top error is the most frequent code;
// equal counts resolve to the lexically lowest code.
func RankStudentErrors(events []GrammarEvent, roster []StudentRef, namer CodeNamer) []StudentErrors {
	breakdowns := make(map[int]map[string]int)
	eventOrder := make([]int, 0)
	for _, e := range events {
		b, ok := breakdowns[e.StudentID]
		if !ok {
			b = make(map[string]int)
			breakdowns[e.StudentID] = b
			eventOrder = append(eventOrder, e.StudentID)
		}
		b[e.Code]++
	}

	students := make([]StudentRef, 0, len(breakdowns))
	known := make(map[int]struct{}, len(roster))
	for _, s := range roster {
		known[s.ID] = struct{}{}
		if _, ok := breakdowns[s.ID]; ok {
			students = append(students, s)
		}
	}
	for _, id := range eventOrder {
		if _, ok := known[id]; !ok {
			students = append(students, StudentRef{ID: id})
		}
	}

	ranking := make([]StudentErrors, 0, len(students))
	for _, s := range students {
		b := breakdowns[s.ID]
		var total int
		for _, n := range b {
			total += n
		}
		top := TopCode(b)
		ranking = append(ranking, StudentErrors{
			Student:      s,
			TotalErrors:  total,
			TopErrorCode: top,
			TopError:     namer.name(top),
			Breakdown:    b,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].TotalErrors > ranking[j].TotalErrors })
	return ranking
}

// TopCode returns the code with the highest count, the lexically lowest one on ties,
// or "" for an empty breakdown.
func TopCode(breakdown map[string]int) string {
	var top string
	best := 0
	for code, n := range breakdown {
		if n > best || (n == best && code < top) {
			top, best = code, n
		}
	}
	return top
}

type GrammarAnalysis struct {
	Filter            GrammarFilter   `json:"filter"`
	TotalErrors       int             `json:"total_errors"`
	UniqueStudents    int             `json:"unique_students"`
	AveragePerStudent int             `json:"average_per_student"`
	Codes             []CodeFrequency `json:"error_analysis"`
	Students          []StudentErrors `json:"student_analysis"`
}

// AnalyzeGrammar filters events and builds both rankings over the filtered set.
func AnalyzeGrammar(events []GrammarEvent, roster []StudentRef, filter GrammarFilter, now time.Time, namer CodeNamer) GrammarAnalysis {
	if filter.Window == "" {
		filter.Window = WindowAll
	}
	filtered := FilterGrammarEvents(events, filter, now)

	unique := make(map[int]struct{})
	for _, e := range filtered {
		unique[e.StudentID] = struct{}{}
	}

	return GrammarAnalysis{
		Filter:            filter,
		TotalErrors:       len(filtered),
		UniqueStudents:    len(unique),
		AveragePerStudent: RoundedRatio(len(filtered), len(unique)),
		Codes:             RankErrorCodes(filtered, namer),
		Students:          RankStudentErrors(filtered, roster, namer),
	}
}

// Breakdown counts events per code.
type Breakdown struct {
	Total  int            `json:"total_errors"`
	Counts map[string]int `json:"error_breakdown"`
}

func GrammarBreakdown(events []GrammarEvent) Breakdown {
	b := Breakdown{Counts: make(map[string]int)}
	for _, e := range events {
		b.Counts[e.Code]++
		b.Total++
	}
	return b
}
