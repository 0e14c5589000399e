package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/campusboard/pkg/notice"
)

const maxModalWidth = 60

func (m *Model) View() string {
	if m.showing {
		return m.viewSlideshow()
	}

	width := m.termWidth
	top := []string{m.viewHeader()}
	if t := m.viewTicker(width); t != "" {
		top = append(top, t)
	}
	header := strings.Join(top, "\n")
	footer := m.viewFooter(width)

	bodyHeight := m.termHeight - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	if modal := m.viewModal(); modal != "" {
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, modal)
	} else {
		body = m.viewSection(width, bodyHeight)
		if m.transiting {
			body = lipgloss.NewStyle().Faint(true).Render(body)
		}
	}

	return strings.Join([]string{header, "", body, "", footer}, "\n")
}

func (m *Model) viewSection(width, height int) string {
	switch m.current() {
	case sectionCalendar:
		return m.viewCalendar(width)
	case sectionAdmin:
		return m.viewAdmin(width)
	default:
		return m.viewNotices(width, height)
	}
}

func (m *Model) modalWidth() int {
	if m.termWidth-4 < maxModalWidth {
		return m.termWidth - 4
	}
	return maxModalWidth
}

func (m *Model) viewModal() string {
	w := m.modalWidth()
	switch m.mode {
	case modeLogin:
		return m.viewLogin(w)
	case modeDetail:
		return m.viewDetail(w)
	case modeConfirm:
		return m.viewConfirm(w)
	case modeHelp:
		return m.viewHelp(w)
	default:
		return ""
	}
}

func (m *Model) viewHeader() string {
	st := m.theme.Header
	var tabs []string
	for i, s := range m.sections() {
		label := string(rune('1'+i)) + " " + s.String()
		switch {
		case m.transiting && s == m.section:
			tabs = append(tabs, st.Leaving.Render(label))
		case (!m.transiting && s == m.section) || (m.transiting && s == m.next):
			tabs = append(tabs, st.ActiveTab.Render(label))
		default:
			tabs = append(tabs, st.Tab.Render(label))
		}
	}

	who := m.role().String()
	if u, ok := m.board.CurrentUser(); ok {
		who = u.Name + " (" + u.Role.String() + ")"
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Title.Render("Campus Board"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
	right := st.Role.Render(who) + "  " + st.Clock.Render(m.clock.Format("Mon Jan 2  3:04:05 PM"))

	gap := m.termWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.String(left+" "+right, uint(m.termWidth))
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) viewFooter(width int) string {
	st := m.theme.Footer
	var parts []string
	if m.toast != "" {
		parts = append(parts, m.theme.Toast.Render(m.toast))
	}
	switch {
	case m.errText != "":
		parts = append(parts, st.Error.Render(m.errText))
	case m.status != "":
		parts = append(parts, st.Status.Render(m.status))
	}
	parts = append(parts, st.Help.Render(m.helpLine()))
	return truncate.String(strings.Join(parts, "  "), uint(width))
}

func (m *Model) helpLine() string {
	switch m.mode {
	case modeSearch:
		return "type to filter • enter/esc done"
	case modeForm:
		return "tab next • enter publish • esc cancel"
	case modeLogin, modeDetail, modeConfirm, modeHelp:
		return ""
	}
	switch m.current() {
	case sectionCalendar:
		return "h/l month • arrows day • t today • s slideshow • ? help • q quit"
	case sectionAdmin:
		return "n new notice • s slideshow • L logout • ? help • q quit"
	default:
		return "j/k move • / search • d dept • c category • enter open • s slideshow • ? help • q quit"
	}
}

func (m *Model) viewHelp(width int) string {
	st := m.theme.Modal
	rows := [][2]string{
		{"1 2 3, tab", "switch section"},
		{"j k", "move between notices"},
		{"/", "search notices"},
		{"d c", "cycle department or category filter"},
		{"enter", "open notice"},
		{"h l, [ ]", "previous or next month"},
		{"arrows", "move the selected day"},
		{"s", "start or stop the slideshow"},
		{"L", "log out and pick a role"},
		{"q, ctrl+c", "quit"},
	}
	if m.isAdmin() {
		rows = append(rows, [2]string{"x", "delete notice"}, [2]string{"n", "new notice (Admin tab)"})
	}
	lines := []string{st.Title.Render("Keys"), ""}
	for _, r := range rows {
		lines = append(lines, st.Active.Render(padRight(r[0], 12))+st.Body.Render(r[1]))
	}
	lines = append(lines, "", m.theme.Footer.Help.Render("any key to close"))
	if m.role() == notice.RoleNone {
		lines = append(lines, m.theme.Footer.Help.Render("pick a role to unlock the board"))
	}
	return st.Frame.Width(width).Render(strings.Join(lines, "\n"))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
