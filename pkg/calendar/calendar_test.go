package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/campusboard/pkg/notice"
)

func TestGridCellCount(t *testing.T) {
	now := time.Date(2026, time.February, 12, 10, 0, 0, 0, time.Local)
	for year := 2023; year <= 2028; year++ {
		for m := time.January; m <= time.December; m++ {
			g := BuildMonthGrid(year, m, nil, now)
			first := time.Date(year, m, 1, 0, 0, 0, 0, time.Local)
			require.Equal(t, int(first.Weekday()), g.LeadingBlanks, "%d-%02d", year, m)
			require.Equal(t, g.LeadingBlanks+DaysIn(year, m), len(g.Cells), "%d-%02d", year, m)
			for i := 0; i < g.LeadingBlanks; i++ {
				require.True(t, g.Cells[i].Blank())
			}
		}
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2028, time.February))
	assert.Equal(t, 28, DaysIn(2026, time.February))
	assert.Equal(t, 31, DaysIn(2026, time.December))
	assert.Equal(t, 30, DaysIn(2026, time.April))
}

func TestGridFlags(t *testing.T) {
	now := time.Date(2026, time.February, 12, 23, 59, 0, 0, time.Local)
	events := []notice.Event{
		{ID: 1, Title: "Lecture", Date: "2026-02-18", Time: "14:00"},
		{ID: 2, Title: "Fest", Date: "2026-02-20", Time: "10:00"},
		{ID: 3, Title: "Next month", Date: "2026-03-18", Time: "10:00"},
	}
	g := BuildMonthGrid(2026, time.February, events, now)

	// February 1, 2026 is a Sunday.
	require.Equal(t, 0, g.LeadingBlanks)
	var withEvents []int
	var today []int
	for _, c := range g.Cells {
		if c.HasEvent {
			withEvents = append(withEvents, c.Day)
		}
		if c.IsToday {
			today = append(today, c.Day)
		}
	}
	assert.Equal(t, []int{18, 20}, withEvents)
	assert.Equal(t, []int{12}, today)

	march := BuildMonthGrid(2026, time.March, events, now)
	for _, c := range march.Cells {
		assert.False(t, c.IsToday)
	}
}

func TestShiftIsAGroupAction(t *testing.T) {
	for year := 1999; year <= 2001; year++ {
		for m := time.January; m <= time.December; m++ {
			y, mm := Shift(year, m, 1)
			y, mm = Shift(y, mm, -1)
			require.Equal(t, year, y)
			require.Equal(t, m, mm)

			y, mm = Shift(year, m, -1)
			y, mm = Shift(y, mm, 1)
			require.Equal(t, year, y)
			require.Equal(t, m, mm)
		}
	}
}

func TestShiftRollsYear(t *testing.T) {
	y, m := Shift(2025, time.December, 1)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)

	y, m = Shift(2026, time.January, -1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	y, m = Shift(2026, time.March, -15)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)
}

func TestSelectionReplaces(t *testing.T) {
	events := []notice.Event{
		{ID: 1, Date: "2026-02-18"},
		{ID: 2, Date: "2026-02-20"},
		{ID: 3, Date: "2026-02-18"},
	}
	var s Selection
	got := s.Select("2026-02-18", events)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	got = s.Select("2026-02-20", events)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-02-20", s.Date())

	s.Clear()
	assert.Empty(t, s.Date())
	assert.Empty(t, s.Events())
}

func TestUpcoming(t *testing.T) {
	events := []notice.Event{
		{ID: 1, Date: "2026-02-10"},
		{ID: 2, Date: "2026-02-20"},
		{ID: 3, Date: "2026-02-12"},
		{ID: 4, Date: "2026-03-01"},
	}
	got := Upcoming(events, "2026-02-12", 2)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestRenderPlain(t *testing.T) {
	now := time.Date(2026, time.February, 12, 0, 0, 0, 0, time.Local)
	g := BuildMonthGrid(2026, time.February, nil, now)
	out := Render(g, "", PlainOptions())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "February 2026", lines[0])
	assert.Equal(t, "Su Mo Tu We Th Fr Sa", lines[1])
	assert.Equal(t, " 1  2  3  4  5  6  7", lines[2])
	assert.Equal(t, "22 23 24 25 26 27 28", lines[5])
}

func TestParseMonth(t *testing.T) {
	y, m, ok := ParseMonth("2026-12")
	require.True(t, ok)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.December, m)

	_, _, ok = ParseMonth("December")
	assert.False(t, ok)
}
