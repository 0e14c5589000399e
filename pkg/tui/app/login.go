package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
)

const (
	loginRole = iota
	loginUsername
	loginPassword
	loginFields
)

// loginDialog picks the session role. Credentials are optional; with a
// username the board checks them, without one the role is taken as given.
type loginDialog struct {
	roleIdx  int
	username textinput.Model
	password textinput.Model
	focus    int
	err      string
}

func newLoginDialog() loginDialog {
	user := textinput.New()
	user.Placeholder = "username (optional)"
	user.Prompt = ""
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = ""
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword

	return loginDialog{username: user, password: pass}
}

func (d *loginDialog) role() notice.Role {
	roles := notice.Roles()
	return roles[d.roleIdx%len(roles)]
}

func (d *loginDialog) setFocus(i int) tea.Cmd {
	d.username.Blur()
	d.password.Blur()
	d.focus = (i + loginFields) % loginFields
	switch d.focus {
	case loginUsername:
		return d.username.Focus()
	case loginPassword:
		return d.password.Focus()
	}
	return nil
}

func (m *Model) openLogin() {
	m.login = newLoginDialog()
	for i, r := range notice.Roles() {
		if r == m.role() {
			m.login.roleIdx = i
		}
	}
	m.setMode(modeLogin)
}

func (m *Model) logout() {
	if err := m.board.Logout(m.ctx); err != nil {
		m.setError(err)
	}
	if m.section == sectionAdmin || m.next == sectionAdmin {
		m.section, m.next = sectionNotices, sectionNotices
		m.transiting = false
	}
	m.openLogin()
}

func (m *Model) handleLoginKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	d := &m.login
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		if m.role() != notice.RoleNone {
			d.setFocus(loginRole)
			m.setMode(modeNormal)
		}
	case "tab", "down":
		cmd = d.setFocus(d.focus + 1)
	case "shift+tab", "up":
		cmd = d.setFocus(d.focus - 1)
	case "enter":
		m.submitLogin()
	default:
		switch d.focus {
		case loginUsername:
			d.username, cmd = d.username.Update(msg)
		case loginPassword:
			d.password, cmd = d.password.Update(msg)
		default:
			n := len(notice.Roles())
			switch msg.String() {
			case "left", "h":
				d.roleIdx = (d.roleIdx - 1 + n) % n
			case "right", "l", "space":
				d.roleIdx = (d.roleIdx + 1) % n
			case "s":
				d.roleIdx = 0
			case "f":
				d.roleIdx = 1
			case "a":
				d.roleIdx = 2
			}
		}
	}
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	return true
}

func (m *Model) submitLogin() {
	d := &m.login
	role := d.role()
	username := strings.TrimSpace(d.username.Value())

	if username == "" {
		m.board.SetRole(role)
		m.finishLogin(fmt.Sprintf("Signed in as %s", role))
		return
	}

	u, err := m.board.Login(m.ctx, username, d.password.Value(), role)
	if err != nil {
		if errors.Is(err, board.ErrInvalidCredentials) {
			d.err = "Invalid username, password or role"
		} else {
			d.err = err.Error()
			m.log.Error().Err(err).Msg("login")
		}
		d.password.Reset()
		return
	}
	m.finishLogin(fmt.Sprintf("Welcome, %s", u.Name))
}

func (m *Model) finishLogin(toast string) {
	m.login.setFocus(loginRole)
	m.login.err = ""
	m.setMode(modeNormal)
	if !m.isAdmin() && (m.section == sectionAdmin || m.next == sectionAdmin) {
		m.section, m.next = sectionNotices, sectionNotices
		m.transiting = false
	}
	m.showToast(toast)
}

func (m *Model) viewLogin(width int) string {
	d := &m.login
	st := m.theme.Modal

	var roles []string
	for i, r := range notice.Roles() {
		name := strings.ToUpper(r.String()[:1]) + r.String()[1:]
		if i == d.roleIdx {
			roles = append(roles, st.Active.Render("["+name+"]"))
		} else {
			roles = append(roles, st.Field.Render(" "+name+" "))
		}
	}
	label := func(i int, name string) string {
		if d.focus == i {
			return st.Active.Render("› " + name)
		}
		return st.Field.Render("  " + name)
	}

	rows := []string{
		st.Title.Render("Campus Board"),
		st.Body.Render("Choose how you are using the board."),
		"",
		label(loginRole, "Role     ") + strings.Join(roles, " "),
		label(loginUsername, "Username ") + d.username.View(),
		label(loginPassword, "Password ") + d.password.View(),
	}
	if d.err != "" {
		rows = append(rows, "", st.Error.Render(d.err))
	}
	hint := "←/→ role • tab field • enter continue"
	if m.role() != notice.RoleNone {
		hint += " • esc cancel"
	}
	rows = append(rows, "", m.theme.Footer.Help.Render(hint))
	return st.Frame.Width(width).Render(strings.Join(rows, "\n"))
}
