package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
)

// cardHeight is the rendered height of one notice card including its border.
const cardHeight = 5

func (m *Model) criteria() filter.Criteria {
	depts := notice.DepartmentFilters()
	cats := notice.CategoryFilters()
	return filter.Criteria{
		Search:     m.search.Value(),
		Department: depts[m.deptIdx%len(depts)],
		Category:   cats[m.catIdx%len(cats)],
	}
}

// refreshNotices re-runs the filter over the board and keeps the cursor on
// the same notice when it is still visible.
func (m *Model) refreshNotices() {
	if m.board == nil {
		return
	}
	var keep int64
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		keep = m.visible[m.cursor].ID
	}
	all := m.board.Notices()
	m.visible = m.criteria().Apply(all)
	m.urgent = filter.Urgent(all)

	m.cursor = 0
	for i, n := range m.visible {
		if n.ID == keep {
			m.cursor = i
			break
		}
	}
	if m.mode == modeDetail {
		if _, ok := m.board.Notice(m.detailID); !ok {
			m.setMode(modeNormal)
		}
	}
}

func (m *Model) selectedNotice() (notice.Notice, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return notice.Notice{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) cycleDepartment(delta int) {
	n := len(notice.DepartmentFilters())
	m.deptIdx = (m.deptIdx + delta + n) % n
	m.refreshNotices()
}

func (m *Model) cycleCategory(delta int) {
	n := len(notice.CategoryFilters())
	m.catIdx = (m.catIdx + delta + n) % n
	m.refreshNotices()
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
}

func (m *Model) handleNoticesKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.moveCursor(-len(m.visible))
	case "G", "end":
		m.moveCursor(len(m.visible))
	case "/":
		m.setMode(modeSearch)
		*cmds = append(*cmds, m.search.Focus())
	case "d":
		m.cycleDepartment(1)
	case "D":
		m.cycleDepartment(-1)
	case "c":
		m.cycleCategory(1)
	case "C":
		m.cycleCategory(-1)
	case "esc":
		if m.search.Value() != "" || m.deptIdx != 0 || m.catIdx != 0 {
			m.search.SetValue("")
			m.deptIdx, m.catIdx = 0, 0
			m.refreshNotices()
			m.setStatus("Filters cleared")
		}
	case "enter":
		if n, ok := m.selectedNotice(); ok {
			m.openDetail(n)
		}
	case "x", "delete":
		m.startDeleteConfirm(cmds)
	default:
		return false
	}
	return true
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.search.Blur()
		m.setMode(modeNormal)
		return true
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		// Every keystroke re-filters.
		m.refreshNotices()
		return true
	}
}

// openDetail shows n in the detail dialog. Long descriptions scroll.
func (m *Model) openDetail(n notice.Notice) {
	width := m.modalWidth() - m.theme.Modal.Frame.GetHorizontalFrameSize()
	height := m.termHeight - 16
	if height < 3 {
		height = 3
	}
	m.detailID = n.ID
	m.detail.SetWidth(max(width, 1))
	m.detail.SetHeight(height)
	m.detail.SetContent(wordwrap.String(n.Description, max(width, 1)))
	m.detail.SetYOffset(0)
	m.setMode(modeDetail)
}

func (m *Model) handleDetailKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "esc", "enter", "q":
		m.setMode(modeNormal)
	case "x", "delete":
		m.startDeleteConfirm(cmds)
	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		if cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
	return true
}

func (m *Model) startDeleteConfirm(cmds *[]tea.Cmd) {
	if !m.isAdmin() {
		m.setStatus("Only admins can delete notices")
		return
	}
	target := m.detailID
	if m.mode != modeDetail {
		n, ok := m.selectedNotice()
		if !ok {
			m.setStatus("No notice selected")
			return
		}
		target = n.ID
	}
	m.confirmID = target
	m.confirm.SetValue("")
	m.setMode(modeConfirm)
	*cmds = append(*cmds, m.confirm.Focus())
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(strings.ToLower(m.confirm.Value()))
		if input != "yes" {
			m.setStatus("Type yes to confirm")
			return true
		}
		m.applyDelete(m.confirmID)
	case "esc":
		m.cancelConfirm()
		m.setStatus("Delete cancelled")
	default:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		if cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
	return true
}

func (m *Model) cancelConfirm() {
	m.confirm.Blur()
	m.confirm.SetValue("")
	m.confirmID = 0
	m.setMode(modeNormal)
}

func (m *Model) applyDelete(id int64) {
	title := ""
	if n, ok := m.board.Notice(id); ok {
		title = n.Title
	}
	m.cancelConfirm()
	if err := m.board.DeleteNotice(m.ctx, id); err != nil {
		m.setError(err)
		return
	}
	m.refreshNotices()
	if title != "" {
		m.showToast(fmt.Sprintf("Deleted %q", title))
	}
}

func (m *Model) viewFilters(width int) string {
	c := m.criteria()
	field := m.theme.Modal.Field
	active := m.theme.Modal.Active

	search := m.search.View()
	if m.mode != modeSearch && m.search.Value() == "" {
		search = field.Render("/ search")
	}
	parts := []string{
		search,
		field.Render("dept ") + active.Render(notice.DepartmentName(c.Department)),
		field.Render("category ") + active.Render(c.Category),
		field.Render(fmt.Sprintf("%d shown", len(m.visible))),
	}
	return truncate.String(strings.Join(parts, "   "), uint(width))
}

func (m *Model) viewTicker(width int) string {
	if len(m.urgent) == 0 || width <= 0 {
		return ""
	}
	titles := make([]string, 0, len(m.urgent))
	for _, n := range m.urgent {
		titles = append(titles, n.Title)
	}
	text := []rune("URGENT: " + strings.Join(titles, "  •  ") + "     ")
	off := m.tickerOffset % len(text)
	rotated := string(append(append([]rune{}, text[off:]...), text[:off]...))
	for len([]rune(rotated)) < width {
		rotated += string(text)
	}
	return m.theme.Header.Ticker.Render(truncate.String(rotated, uint(width)))
}

func (m *Model) viewNotices(width, height int) string {
	lines := []string{m.viewFilters(width), ""}
	if len(m.visible) == 0 {
		lines = append(lines, m.theme.Card.Muted.Render("No notices match."))
		return strings.Join(lines, "\n")
	}

	room := (height - len(lines)) / cardHeight
	if room < 1 {
		room = 1
	}
	start := 0
	if m.cursor >= room {
		start = m.cursor - room + 1
	}
	end := start + room
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderCard(m.visible[i], i == m.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCard(n notice.Notice, selected bool, width int) string {
	st := m.theme.Card
	frame := st.Frame
	if selected {
		frame = st.Selected
	}
	inner := width - frame.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	title := st.Title.Render(n.Title)
	if n.Urgent {
		title = st.Urgent.Render("URGENT ") + title
	}
	meta := st.Meta.Render(fmt.Sprintf("%s | %s | %s", n.DepartmentName(), n.Category, notice.FormatDate(n.Date)))
	body := strings.SplitN(wordwrap.String(n.Description, inner), "\n", 2)[0]

	content := lipgloss.JoinVertical(lipgloss.Left,
		truncate.StringWithTail(title, uint(inner), "…"),
		truncate.StringWithTail(meta, uint(inner), "…"),
		truncate.StringWithTail(st.Body.Render(body), uint(inner), "…"),
	)
	return frame.Width(width).Render(content)
}

func (m *Model) viewDetail(width int) string {
	n, ok := m.board.Notice(m.detailID)
	if !ok {
		return ""
	}
	st := m.theme.Modal
	inner := width - st.Frame.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	if n.Urgent {
		b.WriteString(m.theme.Card.Urgent.Render("URGENT"))
		b.WriteString("\n")
	}
	b.WriteString(st.Title.Render(wordwrap.String(n.Title, inner)))
	b.WriteString("\n")
	b.WriteString(st.Field.Render(fmt.Sprintf("%s | %s | %s", n.DepartmentName(), n.Category, notice.FormatDate(n.Date))))
	b.WriteString("\n\n")
	b.WriteString(st.Body.Render(m.detail.View()))
	b.WriteString("\n\n")
	hint := "j/k scroll • esc close"
	if m.isAdmin() {
		hint = "j/k scroll • x delete • esc close"
	}
	b.WriteString(m.theme.Footer.Help.Render(hint))
	return st.Frame.Width(width).Render(b.String())
}

func (m *Model) viewConfirm(width int) string {
	title := ""
	if n, ok := m.board.Notice(m.confirmID); ok {
		title = n.Title
	}
	st := m.theme.Modal
	body := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render("Delete notice"),
		"",
		st.Body.Render(fmt.Sprintf("Delete %q? This cannot be undone.", title)),
		st.Field.Render("Type yes to confirm:"),
		m.confirm.View(),
	)
	return st.Frame.Width(width).Render(body)
}
