package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Options controls calendar styling.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EventStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		EventStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowTitle:     true,
	}
}

// PlainOptions renders without styling, for logs and tests.
func PlainOptions() Options {
	return Options{ShowTitle: true}
}

// Render produces a multi-line calendar for g. The cell whose date equals
// selected is highlighted.
func Render(g Grid, selected string, opts Options) string {
	var lines []string
	if opts.ShowTitle {
		lines = append(lines, opts.TitleStyle.Render(g.Title()))
	}
	lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	for _, week := range g.Weeks() {
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, renderCell(c, selected, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderCell(c Cell, selected string, opts Options) string {
	if c.Blank() {
		return opts.EmptyStyle.Render("  ")
	}
	text := fmt.Sprintf("%2d", c.Day)
	style := opts.EmptyStyle
	if c.HasEvent {
		style = opts.EventStyle
	}
	if c.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if selected != "" && c.Date == selected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}
