package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldDepartment
	fieldCategory
	fieldDate
	fieldUrgent
	fieldCount
)

// noticeForm is the admin notice creation form.
type noticeForm struct {
	title       textinput.Model
	description textinput.Model
	date        textinput.Model
	deptIdx     int
	catIdx      int
	urgent      bool
	focus       formField
	errs        map[string]string
}

func newNoticeForm(now time.Time) noticeForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 120

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.Prompt = ""
	desc.CharLimit = 500

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.Prompt = ""
	date.CharLimit = 10
	date.SetValue(notice.DateString(now))

	return noticeForm{title: title, description: desc, date: date}
}

func (f *noticeForm) department() string {
	depts := notice.DepartmentFilters()
	return depts[f.deptIdx%len(depts)]
}

func (f *noticeForm) category() string {
	cats := notice.Categories()
	return cats[f.catIdx%len(cats)]
}

func (f *noticeForm) draft() notice.Notice {
	return notice.Notice{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.description.Value()),
		Date:        strings.TrimSpace(f.date.Value()),
		Department:  f.department(),
		Category:    f.category(),
		Urgent:      f.urgent,
	}
}

// input returns the text input behind the focused field, if any.
func (f *noticeForm) input() *textinput.Model {
	switch f.focus {
	case fieldTitle:
		return &f.title
	case fieldDescription:
		return &f.description
	case fieldDate:
		return &f.date
	default:
		return nil
	}
}

func (f *noticeForm) setFocus(field formField) tea.Cmd {
	f.title.Blur()
	f.description.Blur()
	f.date.Blur()
	f.focus = (field + fieldCount) % fieldCount
	if in := f.input(); in != nil {
		return in.Focus()
	}
	return nil
}

func (f *noticeForm) blur() {
	f.title.Blur()
	f.description.Blur()
	f.date.Blur()
}

func (f *noticeForm) cycle(delta int) {
	switch f.focus {
	case fieldDepartment:
		n := len(notice.DepartmentFilters())
		f.deptIdx = (f.deptIdx + delta + n) % n
	case fieldCategory:
		n := len(notice.Categories())
		f.catIdx = (f.catIdx + delta + n) % n
	case fieldUrgent:
		f.urgent = !f.urgent
	}
}

func (m *Model) handleAdminKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "n", "enter", "i":
		if !m.isAdmin() {
			return false
		}
		m.setMode(modeForm)
		if cmd := m.form.setFocus(fieldTitle); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		return true
	}
	return false
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	f := &m.form
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		f.blur()
		m.setMode(modeNormal)
	case "tab", "down":
		cmd = f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		cmd = f.setFocus(f.focus - 1)
	case "enter", "ctrl+s":
		m.submitForm()
	default:
		in := f.input()
		if in != nil {
			*in, cmd = in.Update(msg)
			break
		}
		switch msg.String() {
		case "left":
			f.cycle(-1)
		case "right", "space":
			f.cycle(1)
		}
	}
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	return true
}

func (m *Model) submitForm() {
	if !m.isAdmin() {
		m.setStatus("Only admins can publish notices")
		return
	}
	n, err := m.board.AddNotice(m.ctx, m.form.draft())
	if err != nil {
		var verr *board.ValidationError
		if errors.As(err, &verr) {
			m.form.errs = verr.Fields
			m.setStatus("Fix the highlighted fields")
			return
		}
		m.setError(err)
		return
	}
	m.log.Info().Int64("id", n.ID).Str("title", n.Title).Msg("notice published")
	m.form.blur()
	m.form = newNoticeForm(m.now())
	m.setMode(modeNormal)
	m.refreshNotices()
	m.showToast("Notice published")
	m.switchSection(sectionNotices)
}

func (m *Model) viewForm(width int) string {
	f := &m.form
	st := m.theme.Modal
	editing := m.mode == modeForm

	label := func(field formField, name string) string {
		if editing && f.focus == field {
			return st.Active.Render("› " + name)
		}
		return st.Field.Render("  " + name)
	}
	errLine := func(key string) string {
		if msg, ok := f.errs[key]; ok {
			return "\n    " + st.Error.Render(msg)
		}
		return ""
	}
	choice := func(v string) string {
		return "‹ " + v + " ›"
	}
	urgent := "[ ]"
	if f.urgent {
		urgent = "[x]"
	}

	rows := []string{
		st.Title.Render("New notice"),
		"",
		label(fieldTitle, "Title       ") + f.title.View() + errLine("title"),
		label(fieldDescription, "Description ") + f.description.View() + errLine("description"),
		label(fieldDepartment, "Department  ") + choice(notice.DepartmentName(f.department())) + errLine("department"),
		label(fieldCategory, "Category    ") + choice(f.category()) + errLine("category"),
		label(fieldDate, "Date        ") + f.date.View() + errLine("date"),
		label(fieldUrgent, "Urgent      ") + urgent,
		"",
	}
	if editing {
		rows = append(rows, m.theme.Footer.Help.Render("tab next field • ←/→ change • enter publish • esc cancel"))
	} else {
		rows = append(rows, m.theme.Footer.Help.Render("n new notice"))
	}
	return st.Frame.Width(width).Render(strings.Join(rows, "\n"))
}

func (m *Model) viewAnalytics() string {
	a := m.board.Analytics()
	st := m.theme.Card
	rows := []string{
		st.Title.Render("Analytics"),
		"",
		fmt.Sprintf("Total items  %d", a.TotalItems),
		fmt.Sprintf("Notices      %d", a.NoticesCount),
		fmt.Sprintf("Events       %d", a.EventsCount),
		fmt.Sprintf("Urgent       %d", a.UrgentCount),
		"",
		st.Title.Render("By department"),
	}
	for _, d := range a.Departments {
		rows = append(rows, fmt.Sprintf("%-18s %d", notice.DepartmentName(d.Department), d.Count))
	}
	rows = append(rows, "", st.Muted.Render("Export with: campusboard export [--data-uri|--pdf]"))
	return strings.Join(rows, "\n")
}

func (m *Model) viewAdmin(width int) string {
	formWidth := width * 3 / 5
	if formWidth < 40 {
		return lipgloss.JoinVertical(lipgloss.Left, m.viewForm(width), "", m.viewAnalytics())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewForm(formWidth), "   ", m.viewAnalytics())
}
