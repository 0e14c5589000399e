package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/notice"
)

const upcomingLimit = 5

func (m *Model) shiftMonth(delta int) {
	m.calYear, m.calMonth = calendar.Shift(m.calYear, m.calMonth, delta)
}

// moveSelection moves the selected day by days, following it into the
// adjacent month when needed. With nothing selected it starts from today.
func (m *Model) moveSelection(days int) {
	var from time.Time
	if d := m.selection.Date(); d != "" {
		t, err := notice.ParseDate(d)
		if err != nil {
			return
		}
		from = t.AddDate(0, 0, days)
	} else {
		from = m.now()
		if from.Year() != m.calYear || from.Month() != m.calMonth {
			from = time.Date(m.calYear, m.calMonth, 1, 0, 0, 0, 0, time.Local)
		}
	}
	m.selectDay(from)
}

func (m *Model) selectDay(t time.Time) {
	m.calYear, m.calMonth = t.Year(), t.Month()
	m.selection.Select(notice.DateString(t), m.board.Events())
}

func (m *Model) handleCalendarKey(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "h", "[", "pgup":
		m.shiftMonth(-1)
		m.selection.Clear()
	case "l", "]", "pgdown":
		m.shiftMonth(1)
		m.selection.Clear()
	case "left":
		m.moveSelection(-1)
	case "right":
		m.moveSelection(1)
	case "up":
		m.moveSelection(-7)
	case "down":
		m.moveSelection(7)
	case "t":
		m.selectDay(m.now())
	case "esc":
		m.selection.Clear()
	default:
		return false
	}
	return true
}

func (m *Model) viewCalendar(width int) string {
	events := m.board.Events()
	g := calendar.BuildMonthGrid(m.calYear, m.calMonth, events, m.now())
	grid := calendar.Render(g, m.selection.Date(), calendar.DefaultOptions())

	var side string
	if d := m.selection.Date(); d != "" {
		// Recompute in case the board changed since the day was selected.
		side = m.viewEventList(notice.FormatDate(d), calendar.OnDate(events, d), width-26, "No events on this day.")
	} else {
		upcoming := calendar.Upcoming(events, notice.DateString(m.now()), upcomingLimit)
		side = m.viewEventList("Upcoming", upcoming, width-26, "No upcoming events.")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", side)
}

func (m *Model) viewEventList(heading string, events []notice.Event, width int, empty string) string {
	st := m.theme.Card
	if width < 20 {
		width = 20
	}
	lines := []string{st.Title.Render(heading), ""}
	if len(events) == 0 {
		lines = append(lines, st.Muted.Render(empty))
	}
	for _, e := range events {
		lines = append(lines,
			truncate.StringWithTail(st.Title.Render(e.Title), uint(width), "…"),
			truncate.StringWithTail(st.Meta.Render(fmt.Sprintf("%s %s | %s", notice.FormatDateShort(e.Date), notice.FormatTime(e.Time), e.Venue)), uint(width), "…"),
		)
		if e.Description != "" {
			lines = append(lines, truncate.StringWithTail(st.Body.Render(e.Description), uint(width), "…"))
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
