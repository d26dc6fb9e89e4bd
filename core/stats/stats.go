// Package stats turns raw per-row records into the derived figures shown by the app:
// homework completion, grammar error rankings, weekly test results and report figures.
//
// Every function is pure. Inputs are pre-fetched snapshots, "now" is always a parameter,
// and empty inputs or zero denominators degrade to zero values instead of errors.
package stats

import "math"

// StudentRef is the slice of a student every aggregate needs for display.
type StudentRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

// Percentage returns round(100 * num / den), or 0 when den is not positive.
func Percentage(num, den int) int {
	if den <= 0 {
		return 0
	}
	return round(float64(num) * 100 / float64(den))
}

// RoundedRatio returns round(num / den), or 0 when den is not positive.
func RoundedRatio(num, den int) int {
	if den <= 0 {
		return 0
	}
	return round(float64(num) / float64(den))
}

// Ratio returns num / den, or 0 when den is not positive.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// RoundedMean returns the mean of values rounded to the nearest integer, or 0 for no values.
func RoundedMean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round(sum / float64(len(values)))
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func round(v float64) int {
	return int(math.Round(v))
}
