// Package calendar builds month grids of event days and renders them.
package calendar

import (
	"time"

	"tableflip.dev/campusboard/pkg/notice"
)

// Cell is one slot of a month grid. Blank cells pad the first week and have
// Day == 0.
type Cell struct {
	Day      int
	Date     string
	HasEvent bool
	IsToday  bool
}

// Blank reports whether the cell is leading padding.
func (c Cell) Blank() bool { return c.Day == 0 }

// Grid is a month laid out Sunday first.
type Grid struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Cells         []Cell
}

// Title is the "February 2026" heading.
func (g Grid) Title() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
}

// Weeks splits the cells into rows of seven. The last row may be short.
func (g Grid) Weeks() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(g.Cells); i += 7 {
		end := i + 7
		if end > len(g.Cells) {
			end = len(g.Cells)
		}
		rows = append(rows, g.Cells[i:end])
	}
	return rows
}

// BuildMonthGrid lays out month of year. A day has an event when any event's
// date string equals that day's YYYY-MM-DD; IsToday compares against now.
func BuildMonthGrid(year int, month time.Month, events []notice.Event, now time.Time) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// Normalize out-of-range months the same way time.Date does.
	year, month = first.Year(), first.Month()

	dates := make(map[string]bool, len(events))
	for _, e := range events {
		dates[e.Date] = true
	}

	g := Grid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
	}
	days := DaysIn(year, month)
	g.Cells = make([]Cell, g.LeadingBlanks, g.LeadingBlanks+days)
	today := notice.DateString(now)
	for d := 1; d <= days; d++ {
		date := notice.DateString(time.Date(year, month, d, 0, 0, 0, 0, time.Local))
		g.Cells = append(g.Cells, Cell{
			Day:      d,
			Date:     date,
			HasEvent: dates[date],
			IsToday:  date == today,
		})
	}
	return g
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Shift moves (year, month) by delta months, rolling the year as needed.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ParseMonth parses a YYYY-MM month.
func ParseMonth(v string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
