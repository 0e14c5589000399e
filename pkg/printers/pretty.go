// Package printers renders board content for the command line.
package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
)

// PrettyPrint writes colored, human-oriented output.
type PrettyPrint struct {
	ShowID bool
	// Width wraps descriptions; zero disables wrapping.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	if count == 1 {
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	} else {
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Notices prints one block per notice, urgent ones flagged in red.
func (pp *PrettyPrint) Notices(notices ...notice.Notice) {
	if len(notices) == 0 {
		pp.none()
		return
	}

	urgent := color.New(color.FgHiRed, color.Bold)
	title := color.New(color.Bold)
	meta := color.New(color.Faint)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, n := range notices {
		if pp.ShowID {
			_, _ = id.Fprintf(pp.out(), "%d ", n.ID)
		}
		if n.Urgent {
			_, _ = urgent.Fprint(pp.out(), "URGENT ")
		}
		_, _ = title.Fprintln(pp.out(), n.Title)
		_, _ = meta.Fprintf(pp.out(), "  %s | %s | %s\n", n.DepartmentName(), n.Category, notice.FormatDate(n.Date))
		_, _ = fmt.Fprintln(pp.out(), pp.indent(n.Description))
	}
	pp.NewLine()
}

// Events prints events as a table with 12-hour times.
func (pp *PrettyPrint) Events(events ...notice.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.Wrap = true
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Date"), bold.Sprint("Time"), bold.Sprint("Title"), bold.Sprint("Venue"))
	} else {
		tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Time"), bold.Sprint("Title"), bold.Sprint("Venue"))
	}
	for _, e := range events {
		if pp.ShowID {
			tbl.AddRow(strconv.FormatInt(e.ID, 10), notice.FormatDateShort(e.Date), notice.FormatTime(e.Time), e.Title, e.Venue)
		} else {
			tbl.AddRow(notice.FormatDateShort(e.Date), notice.FormatTime(e.Time), e.Title, e.Venue)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Users prints registered users without their passwords.
func (pp *PrettyPrint) Users(users ...notice.User) {
	if len(users) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Username"), bold.Sprint("Name"), bold.Sprint("Role"), bold.Sprint("Department"))
	for _, u := range users {
		tbl.AddRow(u.Username, u.Name, u.Role.String(), notice.DepartmentName(u.Department))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Analytics prints the board summary and the per-department breakdown.
func (pp *PrettyPrint) Analytics(a board.Analytics) {
	bold := color.New(color.Bold)
	red := color.New(color.FgHiRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total items"), a.TotalItems)
	tbl.AddRow(bold.Sprint("Notices"), a.NoticesCount)
	tbl.AddRow(bold.Sprint("Events"), a.EventsCount)
	tbl.AddRow(bold.Sprint("Urgent"), red.Sprint(a.UrgentCount))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if len(a.Departments) == 0 {
		return
	}
	pp.Title("By department")
	dept := uitable.New()
	dept.Separator = "  "
	for _, d := range a.Departments {
		dept.AddRow(notice.DepartmentName(d.Department), d.Count)
	}
	_, _ = fmt.Fprintln(pp.out(), dept)
	pp.NewLine()
}

func (pp *PrettyPrint) indent(text string) string {
	if pp.Width > 4 {
		text = wordwrap.String(text, pp.Width-2)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
