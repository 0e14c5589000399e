package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/notice"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month grid with event days in bold and today
// underlined, followed by the month's events.
func (pp *PrettyPrint) Calendar(g calendar.Grid, events []notice.Event) {
	tf := color.New(color.FgWhite, color.Italic)
	m := g.Title()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	plain := color.New(color.Faint, color.FgWhite)
	busy := color.New(color.Bold, color.FgHiYellow)

	for _, week := range g.Weeks() {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			if c.Blank() {
				cells = append(cells, "  ")
				continue
			}
			p := plain
			if c.HasEvent {
				p = busy
			}
			if c.IsToday {
				p = color.New(color.Underline, color.Bold)
			}
			cells = append(cells, p.Sprintf("%2d", c.Day))
		}
		_, _ = fmt.Fprintln(pp.out(), strings.Join(cells, " "))
	}
	pp.NewLine()

	prefix := fmt.Sprintf("%04d-%02d-", g.Year, int(g.Month))
	var month []notice.Event
	for _, e := range events {
		if strings.HasPrefix(e.Date, prefix) {
			month = append(month, e)
		}
	}
	pp.TitleWithCount("Events", len(month), "event")
	pp.Events(month...)
}
