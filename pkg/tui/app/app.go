// Package app implements the campus board terminal UI on Bubble Tea.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/slideshow"
	"tableflip.dev/campusboard/pkg/tui/theme"
)

const (
	transitionDelay = 150 * time.Millisecond
	toastTTL        = 3 * time.Second
	clockInterval   = time.Second
	frameInterval   = 250 * time.Millisecond
)

type section int

const (
	sectionNotices section = iota
	sectionCalendar
	sectionAdmin
)

func (s section) String() string {
	switch s {
	case sectionNotices:
		return "Notices"
	case sectionCalendar:
		return "Calendar"
	case sectionAdmin:
		return "Admin"
	default:
		return ""
	}
}

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeDetail
	modeConfirm
	modeLogin
	modeForm
	modeHelp
)

// blocker names the scheduler blocker a modal mode holds, if any.
func (m mode) blocker() string {
	switch m {
	case modeDetail:
		return "detail"
	case modeConfirm:
		return "confirm"
	case modeLogin:
		return "login"
	case modeHelp:
		return "help"
	default:
		return ""
	}
}

// Options configures the UI.
type Options struct {
	Rotate time.Duration
	Idle   time.Duration
	Logger zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx   context.Context
	board *board.Board
	theme theme.Theme
	log   zerolog.Logger
	now   func() time.Time

	termWidth  int
	termHeight int
	mode       mode

	section      section
	next         section
	transiting   bool
	transitionID int

	// notices
	search       textinput.Model
	deptIdx      int
	catIdx       int
	visible      []notice.Notice
	urgent       []notice.Notice
	cursor       int
	detailID     int64
	detail       viewport.Model
	confirm      textinput.Model
	confirmID    int64
	tickerOffset int

	// calendar
	calYear   int
	calMonth  time.Month
	selection calendar.Selection

	form  noticeForm
	login loginDialog

	slides     *slideshow.Scheduler
	timers     *tickClock
	effects    []tea.Cmd
	showing    bool
	slide      slideshow.Slide
	slideIndex int
	slideTotal int
	fullscreen bool

	clock    time.Time
	clockGen int
	toast    string
	toastID  int
	status   string
	errText  string

	changes <-chan board.Change
}

type errMsg struct{ err error }
type clockTickMsg struct {
	t   time.Time
	gen int
}
type timerWakeMsg struct{ gen int }
type transitionDoneMsg struct{ id int }
type toastExpiredMsg struct{ id int }
type boardChangedMsg struct{ change board.Change }
type boardClosedMsg struct{}
type watchStartedMsg struct{ err error }

// New builds the model over a loaded board.
func New(ctx context.Context, b *board.Board, opts Options) *Model {
	return newModel(ctx, b, opts, nil)
}

func newModel(ctx context.Context, b *board.Board, opts Options, clock slideshow.Clock) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()

	search := textinput.New()
	search.Placeholder = "Search notices…"
	search.Prompt = "/ "
	search.CharLimit = 80

	confirm := textinput.New()
	confirm.Placeholder = "yes"
	confirm.Prompt = "> "
	confirm.CharLimit = 8

	m := &Model{
		ctx:        ctx,
		board:      b,
		theme:      theme.Default(),
		log:        opts.Logger,
		now:        opts.Now,
		termWidth:  80,
		termHeight: 24,
		search:     search,
		confirm:    confirm,
		detail:     viewport.New(viewport.WithWidth(maxModalWidth), viewport.WithHeight(8)),
		calYear:    now.Year(),
		calMonth:   now.Month(),
		form:       newNoticeForm(now),
		login:      newLoginDialog(),
		clock:      now,
	}
	if clock == nil {
		m.timers = newTickClock(m)
		clock = m.timers
	}
	m.slides = slideshow.New(clock, presenter{m: m}, b, slideshow.Options{
		Rotate: opts.Rotate,
		Idle:   opts.Idle,
		Logger: opts.Logger,
	})
	if b != nil {
		m.changes = b.Subscribe()
	}
	m.refreshNotices()
	if m.role() == notice.RoleNone {
		m.openLogin()
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.slides.Begin()
	cmds := []tea.Cmd{
		m.tickClock(),
		m.waitForChange(),
		startWatchCmd(m.ctx, m.board),
	}
	cmds = append(cmds, m.takeEffects()...)
	if m.mode == modeLogin {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Close releases the board subscription.
func (m *Model) Close() {
	if m.board != nil && m.changes != nil {
		m.board.Unsubscribe(m.changes)
		m.changes = nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case errMsg:
		m.setError(msg.err)
	case clockTickMsg:
		if msg.gen != m.clockGen {
			break
		}
		m.clock = msg.t
		m.tickerOffset++
		cmds = append(cmds, m.tickClock())
	case timerWakeMsg:
		if m.timers != nil {
			m.timers.wake(msg.gen)
		}
	case transitionDoneMsg:
		if msg.id == m.transitionID && m.transiting {
			m.transiting = false
			m.section = m.next
		}
	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
	case boardChangedMsg:
		m.refreshNotices()
		cmds = append(cmds, m.waitForChange())
	case boardClosedMsg:
		m.changes = nil
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("watch unavailable: " + msg.err.Error())
			m.log.Warn().Err(msg.err).Msg("watch board")
		}
	case tea.MouseClickMsg:
		m.slides.Activity()
		if m.slides.State() == slideshow.Presenting {
			m.slides.Stop()
		}
	case tea.MouseMsg:
		m.slides.Activity()
	case tea.KeyPressMsg:
		m.slides.Activity()
		if quit := m.handleKeyPress(msg, &cmds); quit {
			m.slides.Stop()
			m.Close()
			cmds = append(cmds, tea.Quit)
		}
	}

	cmds = append(cmds, m.takeEffects()...)
	return m, tea.Batch(cmds...)
}

// Run starts the UI and blocks until it exits.
func Run(ctx context.Context, b *board.Board, opts Options) error {
	if b == nil {
		return errors.New("ui requires a board")
	}
	m := New(ctx, b, opts)
	defer m.Close()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) tickClock() tea.Cmd {
	d := clockInterval
	if m.showing {
		d = frameInterval
	}
	gen := m.clockGen
	return tea.Tick(d, func(t time.Time) tea.Msg { return clockTickMsg{t: t, gen: gen} })
}

// restartClock replaces the running tick chain, e.g. to change its rate.
func (m *Model) restartClock() {
	m.clockGen++
	m.effects = append(m.effects, m.tickClock())
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if c, ok := <-ch; ok {
			return boardChangedMsg{change: c}
		}
		return boardClosedMsg{}
	}
}

func startWatchCmd(ctx context.Context, b *board.Board) tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return watchStartedMsg{err: b.Watch(ctx)}
	}
}

func (m *Model) takeEffects() []tea.Cmd {
	out := m.effects
	m.effects = nil
	return out
}

func (m *Model) role() notice.Role {
	if m.board == nil {
		return notice.RoleNone
	}
	return m.board.Role()
}

func (m *Model) isAdmin() bool {
	return m.role() == notice.RoleAdmin
}

// setMode moves between modes, keeping the slideshow blockers in step with
// whichever modal is open.
func (m *Model) setMode(next mode) {
	if prev := m.mode.blocker(); prev != "" && next != m.mode {
		m.slides.Unblock(prev)
	}
	m.mode = next
	if b := next.blocker(); b != "" {
		m.slides.Block(b)
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.errText = ""
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.errText = err.Error()
	m.log.Error().Err(err).Msg("ui")
}

func (m *Model) showToast(text string) {
	m.toastID++
	m.toast = text
	id := m.toastID
	m.effects = append(m.effects, tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	}))
}

// switchSection starts the exit transition toward s. The new section only
// becomes active when the matching transitionDoneMsg arrives.
func (m *Model) switchSection(s section) {
	if s == sectionAdmin && !m.isAdmin() {
		return
	}
	if (!m.transiting && s == m.section) || (m.transiting && s == m.next) {
		return
	}
	m.transitionID++
	m.transiting = true
	m.next = s
	id := m.transitionID
	m.effects = append(m.effects, tea.Tick(transitionDelay, func(time.Time) tea.Msg {
		return transitionDoneMsg{id: id}
	}))
}

// current is the section whose content is on screen.
func (m *Model) current() section {
	return m.section
}

func (m *Model) sections() []section {
	if m.isAdmin() {
		return []section{sectionNotices, sectionCalendar, sectionAdmin}
	}
	return []section{sectionNotices, sectionCalendar}
}

func (m *Model) cycleSection(delta int) {
	all := m.sections()
	target := m.section
	if m.transiting {
		target = m.next
	}
	idx := 0
	for i, s := range all {
		if s == target {
			idx = i
		}
	}
	idx = (idx + delta + len(all)) % len(all)
	m.switchSection(all[idx])
}
