// Package stats provides the figures behind the statistics page and the
// dashboard stat cards.
package stats

import (
	"fmt"
	"math"
)

type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

var Periods = []Period{Weekly, Monthly, Yearly}

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Weekly, Monthly, Yearly:
		return p, nil
	case "":
		return Weekly, nil
	}
	return "", fmt.Errorf("unknown period %q (want weekly, monthly or yearly)", s)
}

// Next cycles weekly -> monthly -> yearly -> weekly.
func (p Period) Next() Period {
	switch p {
	case Weekly:
		return Monthly
	case Monthly:
		return Yearly
	default:
		return Weekly
	}
}

type Point struct {
	Name  string
	Hours float64
}

// Series returns the working-hours series for p.
func Series(p Period) []Point {
	switch p {
	case Monthly:
		return []Point{{"Week 1", 32.4}, {"Week 2", 36.7}, {"Week 3", 28.9}, {"Week 4", 35.2}}
	case Yearly:
		return []Point{
			{"Jan", 120}, {"Feb", 115}, {"Mar", 130}, {"Apr", 135}, {"May", 125}, {"Jun", 140},
			{"Jul", 145}, {"Aug", 130}, {"Sep", 135}, {"Oct", 150}, {"Nov", 140}, {"Dec", 120},
		}
	default:
		return []Point{{"Mon", 6.5}, {"Tue", 5.8}, {"Wed", 7.2}, {"Thu", 8.1}, {"Fri", 4.5}, {"Sat", 2.3}, {"Sun", 0.8}}
	}
}

// TotalHours sums a series, rounded to one decimal.
func TotalHours(series []Point) float64 {
	var total float64
	for _, p := range series {
		total += p.Hours
	}
	return round1(total)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type DayHistory struct {
	Day       string
	Completed int
	Total     int
}

// DayStatus buckets a day's completion for display.
type DayStatus string

const (
	DayIdle     DayStatus = "idle"
	DayComplete DayStatus = "complete"
	DayPartial  DayStatus = "partial"
	DayBehind   DayStatus = "behind"
)

func (d DayHistory) Status() DayStatus {
	switch {
	case d.Completed == 0:
		return DayIdle
	case d.Completed == d.Total:
		return DayComplete
	case float64(d.Completed) >= float64(d.Total)*0.5:
		return DayPartial
	default:
		return DayBehind
	}
}

func TaskHistory() []DayHistory {
	return []DayHistory{
		{"Mon", 8, 10}, {"Tue", 6, 7}, {"Wed", 9, 12}, {"Thu", 10, 10},
		{"Fri", 5, 8}, {"Sat", 3, 5}, {"Sun", 0, 2},
	}
}

// CompletionRate is round(completed/total*100) over the whole history, or 0
// when nothing was planned.
func CompletionRate(history []DayHistory) (completed, total, pct int) {
	for _, d := range history {
		completed += d.Completed
		total += d.Total
	}
	if total == 0 {
		return completed, total, 0
	}
	return completed, total, int(math.Round(float64(completed) / float64(total) * 100))
}

type Share struct {
	Name  string
	Value int
	Color string
}

func ProjectDistribution() []Share {
	return []Share{
		{"Banking App", 35, "#8884d8"},
		{"Geological Website", 25, "#82ca9d"},
		{"Mobile Delivery", 20, "#ffc658"},
		{"Events Website", 15, "#ff8042"},
		{"Other", 5, "#0088FE"},
	}
}

type TrendPoint struct {
	Name         string
	Productivity int
	Engagement   int
}

func Trend() []TrendPoint {
	return []TrendPoint{
		{"Week 1", 65, 70}, {"Week 2", 68, 72}, {"Week 3", 75, 80},
		{"Week 4", 85, 88}, {"Week 5", 80, 85}, {"Week 6", 85, 90},
	}
}

func Productivity() []Share {
	return []Share{
		{"Focus Time", 90, "#8884d8"},
		{"Task Completion", 85, "#82ca9d"},
		{"Meeting Efficiency", 75, "#ffc658"},
		{"Collaboration", 90, "#ff8042"},
	}
}

type Challenge struct {
	Name    string
	Status  string
	Actions int
}

// ActionsLabel is "No action needed" or "N recommended action(s)".
func (c Challenge) ActionsLabel() string {
	switch c.Actions {
	case 0:
		return "No action needed"
	case 1:
		return "1 recommended action"
	default:
		return fmt.Sprintf("%d recommended actions", c.Actions)
	}
}

func Challenges() []Challenge {
	return []Challenge{
		{"Meeting Overload", "high", 2},
		{"Context Switching", "medium", 1},
		{"Email Management", "low", 0},
	}
}
