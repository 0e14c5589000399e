package app

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/campusboard/pkg/slideshow"
)

// handleKeyPress routes a key to the active mode. It reports whether the
// program should quit.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	key := msg.String()
	if key == "ctrl+c" {
		return true
	}

	if m.slides.State() == slideshow.Presenting {
		switch key {
		case "esc", "q", "s":
			m.slides.Stop()
		}
		return false
	}

	switch m.mode {
	case modeSearch:
		m.handleSearchKey(msg, cmds)
		return false
	case modeDetail:
		m.handleDetailKey(msg, cmds)
		return false
	case modeConfirm:
		m.handleConfirmKey(msg, cmds)
		return false
	case modeLogin:
		m.handleLoginKey(msg, cmds)
		return false
	case modeForm:
		m.handleFormKey(msg, cmds)
		return false
	case modeHelp:
		m.setMode(modeNormal)
		return false
	}

	if m.handleGlobalKey(msg, cmds) {
		return key == "q"
	}

	switch m.current() {
	case sectionNotices:
		m.handleNoticesKey(msg, cmds)
	case sectionCalendar:
		m.handleCalendarKey(msg)
	case sectionAdmin:
		m.handleAdminKey(msg, cmds)
	}
	return false
}

func (m *Model) handleGlobalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "q":
		return true
	case "1":
		m.switchSection(sectionNotices)
	case "2":
		m.switchSection(sectionCalendar)
	case "3":
		if !m.isAdmin() {
			m.setStatus("Admin tab requires the admin role")
			return true
		}
		m.switchSection(sectionAdmin)
	case "tab":
		m.cycleSection(1)
	case "shift+tab":
		m.cycleSection(-1)
	case "s":
		m.startSlideshow()
	case "L":
		m.logout()
	case "?":
		m.setMode(modeHelp)
	default:
		return false
	}
	return true
}
