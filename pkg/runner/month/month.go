// Package month prints a calendar month with its events.
package month

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/printers"
)

// Month prints the grid for Year/Month. A zero Year means the current month.
type Month struct {
	Year  int
	Month time.Month
	// Upcoming also lists events from today onward, across months.
	Upcoming int
	ShowID   bool

	Board *board.Board
	Out   io.Writer
	Now   func() time.Time
}

func (n *Month) Do(ctx context.Context) error {
	if n.Board == nil {
		return errors.New("can not show calendar, no board")
	}
	if n.Now == nil {
		n.Now = time.Now
	}
	now := n.Now()
	if n.Year == 0 {
		n.Year, n.Month = now.Year(), now.Month()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	events := n.Board.Events()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Calendar(calendar.BuildMonthGrid(n.Year, n.Month, events, now), events)

	if n.Upcoming > 0 {
		upcoming := calendar.Upcoming(events, notice.DateString(now), n.Upcoming)
		pp.TitleWithCount("Upcoming", len(upcoming), "event")
		pp.Events(upcoming...)
	}
	return nil
}
