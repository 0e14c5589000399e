package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/campusboard/pkg/slideshow"
)

const (
	minFullscreenWidth  = 40
	minFullscreenHeight = 12
)

var errTerminalTooSmall = errors.New("terminal too small for fullscreen")

// tickClock runs the scheduler's timers on one Bubble Tea tick aimed at the
// earliest deadline. Re-arming for a later deadline, as the idle watchdog
// does on every input, moves the deadline without starting another tick;
// the live tick re-aims itself when it fires early.
type tickClock struct {
	m      *Model
	armed  map[slideshow.Handle]time.Time
	live   bool
	wakeAt time.Time
	gen    int
}

func newTickClock(m *Model) *tickClock {
	return &tickClock{m: m, armed: make(map[slideshow.Handle]time.Time)}
}

func (c *tickClock) Arm(h slideshow.Handle, d time.Duration) {
	at := c.m.now().Add(d)
	c.armed[h] = at
	if !c.live || at.Before(c.wakeAt) {
		c.schedule(at)
	}
}

func (c *tickClock) Disarm(h slideshow.Handle) {
	delete(c.armed, h)
}

func (c *tickClock) schedule(at time.Time) {
	c.gen++
	c.live = true
	c.wakeAt = at
	gen := c.gen
	d := at.Sub(c.m.now())
	if d < 0 {
		d = 0
	}
	c.m.effects = append(c.m.effects, tea.Tick(d, func(time.Time) tea.Msg {
		return timerWakeMsg{gen: gen}
	}))
}

// wake fires the handles that are due, in deadline order, and aims the next
// tick at the earliest deadline still armed.
func (c *tickClock) wake(gen int) {
	if gen != c.gen || !c.live {
		return
	}
	c.live = false
	now := c.m.now()
	var due []slideshow.Handle
	for h, at := range c.armed {
		if !at.After(now) {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool { return c.armed[due[i]].Before(c.armed[due[j]]) })
	for _, h := range due {
		delete(c.armed, h)
	}
	for _, h := range due {
		c.m.slides.Fire(h)
	}

	var next time.Time
	for _, at := range c.armed {
		if next.IsZero() || at.Before(next) {
			next = at
		}
	}
	if !next.IsZero() && (!c.live || next.Before(c.wakeAt)) {
		c.schedule(next)
	}
}

// presenter paints the slideshow into the model.
type presenter struct{ m *Model }

func (p presenter) ShowSlide(s slideshow.Slide, index, total int) {
	wasShowing := p.m.showing
	p.m.showing = true
	p.m.slide = s
	p.m.slideIndex = index
	p.m.slideTotal = total
	if !wasShowing {
		// Frame rate for the progress bar.
		p.m.restartClock()
	}
}

func (p presenter) HideSlides() {
	p.m.showing = false
	p.m.slide = slideshow.Slide{}
	p.m.restartClock()
}

func (p presenter) EnterFullscreen() error {
	if p.m.termWidth < minFullscreenWidth || p.m.termHeight < minFullscreenHeight {
		return errTerminalTooSmall
	}
	p.m.fullscreen = true
	return nil
}

func (p presenter) ExitFullscreen() error {
	p.m.fullscreen = false
	return nil
}

func (p presenter) Notify(msg string) {
	p.m.showToast(msg)
}

func (m *Model) startSlideshow() {
	if err := m.slides.Start(); err != nil {
		m.log.Debug().Err(err).Msg("slideshow not started")
	}
}

// renderSlide draws the current slide and its progress bar within width.
func (m *Model) renderSlide(width int) string {
	st := m.theme.Slide
	inner := width - st.Frame.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}

	tag := st.Tag
	switch {
	case m.slide.Kind == slideshow.KindEvent:
		tag = st.EventTag
	case m.slide.Urgent:
		tag = st.UrgentTag
	}

	var b strings.Builder
	b.WriteString(tag.Render(m.slide.Tag()))
	b.WriteString("  ")
	b.WriteString(st.Meta.Render(fmt.Sprintf("%d / %d", m.slideIndex+1, m.slideTotal)))
	b.WriteString("\n\n")
	b.WriteString(st.Title.Render(wordwrap.String(m.slide.Title(), inner)))
	b.WriteString("\n")
	b.WriteString(st.Meta.Render(m.slide.Meta()))
	if body := m.slide.Body(); body != "" {
		b.WriteString("\n\n")
		b.WriteString(st.Body.Render(wordwrap.String(body, inner)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.progressBar(inner))

	return st.Frame.Width(width).Render(b.String())
}

// progressBar fills over exactly one rotation period.
func (m *Model) progressBar(width int) string {
	p := m.slides.Progress(m.now())
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	st := m.theme.Slide
	return st.Bar.Render(strings.Repeat("━", filled)) +
		st.BarEmpty.Render(strings.Repeat("─", width-filled))
}

func (m *Model) viewSlideshow() string {
	if !m.fullscreen {
		width := m.termWidth - 4
		return strings.Join([]string{
			m.viewHeader(),
			m.renderSlide(width),
			m.theme.Footer.Help.Render("esc/s/click stop • ctrl+c quit"),
		}, "\n\n")
	}
	width := m.termWidth * 3 / 4
	if width < minFullscreenWidth {
		width = m.termWidth
	}
	frame := m.renderSlide(width)
	hint := m.theme.Footer.Help.Render("esc, s or click to stop")
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, frame, "", hint))
}
