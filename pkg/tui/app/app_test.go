package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/slideshow"
	"tableflip.dev/campusboard/pkg/store"
)

var testNow = time.Date(2026, time.February, 15, 10, 30, 0, 0, time.Local)

type fakeClock struct {
	armed map[slideshow.Handle]time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{armed: make(map[slideshow.Handle]time.Duration)}
}

func (c *fakeClock) Arm(h slideshow.Handle, d time.Duration) { c.armed[h] = d }
func (c *fakeClock) Disarm(h slideshow.Handle)               { delete(c.armed, h) }

// pending returns the newest armed handle with duration d.
func (c *fakeClock) pending(d time.Duration) (slideshow.Handle, bool) {
	var found slideshow.Handle
	for h, v := range c.armed {
		if v == d && h > found {
			found = h
		}
	}
	return found, found != 0
}

func newTestModel(t *testing.T, role notice.Role) (*Model, *fakeClock, *board.Board) {
	t.Helper()
	now := func() time.Time { return testNow }
	b := board.New(store.NewMemory(), board.WithClock(now))
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if role != notice.RoleNone {
		b.SetRole(role)
	}
	clk := newFakeClock()
	m := newModel(context.Background(), b, Options{
		Rotate: 15 * time.Second,
		Idle:   60 * time.Second,
		Now:    now,
	}, clk)
	m.Init()
	t.Cleanup(m.Close)
	return m, clk, b
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
	tabKey   = tea.KeyPressMsg{Code: tea.KeyTab}
	rightKey = tea.KeyPressMsg{Code: tea.KeyRight}
)

func press(m *Model, keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(runeKey(r))
	}
}

// fire delivers a scheduler timer as the program clock would.
func fire(m *Model, h slideshow.Handle) {
	m.slides.Fire(h)
	m.takeEffects()
}

// finishTransition delivers the pending section transition tick.
func finishTransition(m *Model) {
	m.Update(transitionDoneMsg{id: m.transitionID})
}

func TestLoginDialogOnStart(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleNone)

	if m.mode != modeLogin {
		t.Fatalf("expected login dialog, got mode %d", m.mode)
	}
	if got := m.slides.State(); got != slideshow.Suspended {
		t.Fatalf("login dialog should suspend the watchdog, got %s", got)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Choose how you are using the board.") {
		t.Fatalf("expected login prompt in view:\n%s", view)
	}

	press(m, escKey)
	if m.mode != modeLogin {
		t.Fatal("esc must not dismiss the dialog before a role is chosen")
	}

	press(m, rightKey, enterKey)
	if b.Role() != notice.RoleFaculty {
		t.Fatalf("expected faculty role, got %s", b.Role())
	}
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode, got %d", m.mode)
	}
	if got := m.slides.State(); got != slideshow.Idle {
		t.Fatalf("expected idle after login, got %s", got)
	}
	if m.toast != "Signed in as faculty" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestCredentialLogin(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleNone)

	press(m, rightKey, rightKey, tabKey)
	typeText(m, "admin")
	press(m, tabKey)
	typeText(m, "nope")
	press(m, enterKey)

	if m.mode != modeLogin {
		t.Fatal("bad credentials should keep the dialog open")
	}
	if m.login.err == "" {
		t.Fatal("expected a login error")
	}
	if m.login.password.Value() != "" {
		t.Fatal("expected the password to be cleared")
	}

	typeText(m, "password")
	press(m, enterKey)

	if m.mode != modeNormal {
		t.Fatalf("expected login to succeed, mode %d err %q", m.mode, m.login.err)
	}
	u, ok := b.CurrentUser()
	if !ok || u.Username != "admin" {
		t.Fatalf("expected admin to be signed in, got %+v", u)
	}
	if !m.isAdmin() {
		t.Fatal("expected admin role")
	}
	if len(m.sections()) != 3 {
		t.Fatalf("expected the admin tab, got %v", m.sections())
	}
}

func TestSectionTransitionDropsStaleTick(t *testing.T) {
	m, _, _ := newTestModel(t, notice.RoleStudent)

	press(m, runeKey('2'))
	if !m.transiting || m.next != sectionCalendar || m.section != sectionNotices {
		t.Fatalf("expected exit transition toward calendar, got section=%s next=%s", m.section, m.next)
	}
	stale := m.transitionID

	press(m, runeKey('1'))
	m.Update(transitionDoneMsg{id: stale})
	if !m.transiting {
		t.Fatal("stale transition tick should be ignored")
	}

	finishTransition(m)
	if m.transiting || m.section != sectionNotices {
		t.Fatalf("expected notices, got section=%s transiting=%v", m.section, m.transiting)
	}

	press(m, runeKey('2'))
	finishTransition(m)
	if m.section != sectionCalendar {
		t.Fatalf("expected calendar, got %s", m.section)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "February 2026") || !strings.Contains(view, "Upcoming") {
		t.Fatalf("expected calendar view:\n%s", view)
	}

	press(m, runeKey('3'))
	if m.transiting || m.section != sectionCalendar {
		t.Fatal("students must not reach the admin tab")
	}
}

func TestSearchAndFilters(t *testing.T) {
	m, _, _ := newTestModel(t, notice.RoleStudent)

	if len(m.visible) != 3 || !m.visible[0].Urgent {
		t.Fatalf("expected 3 notices with the urgent one first, got %+v", m.visible)
	}

	press(m, runeKey('/'))
	typeText(m, "exam")
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %d", m.mode)
	}
	if len(m.visible) != 1 || m.visible[0].ID != 102 {
		t.Fatalf("expected only the exam notice, got %+v", m.visible)
	}

	press(m, escKey)
	if m.mode != modeNormal || m.search.Value() != "exam" {
		t.Fatal("leaving search should keep the query")
	}
	press(m, escKey)
	if len(m.visible) != 3 {
		t.Fatalf("expected filters cleared, got %d notices", len(m.visible))
	}

	press(m, runeKey('d'))
	if len(m.visible) != 1 || m.visible[0].Department != "cs" {
		t.Fatalf("expected the cs notice, got %+v", m.visible)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Computer Science") || !strings.Contains(view, "TechSymposium Registration") {
		t.Fatalf("expected filtered cards:\n%s", view)
	}
}

func TestDeleteRequiresTypedYes(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleAdmin)

	press(m, runeKey('x'))
	if m.mode != modeConfirm || m.confirmID != 102 {
		t.Fatalf("expected confirm for 102, got mode %d id %d", m.mode, m.confirmID)
	}
	if m.slides.State() != slideshow.Suspended {
		t.Fatal("confirm dialog should block the watchdog")
	}

	typeText(m, "no")
	press(m, enterKey)
	if _, ok := b.Notice(102); !ok {
		t.Fatal("notice deleted without a typed yes")
	}
	if m.mode != modeConfirm {
		t.Fatal("dialog should stay open after a wrong answer")
	}

	press(m, escKey)
	if m.mode != modeNormal || m.slides.State() != slideshow.Idle {
		t.Fatal("esc should cancel and release the blocker")
	}

	press(m, runeKey('x'))
	typeText(m, "yes")
	press(m, enterKey)
	if _, ok := b.Notice(102); ok {
		t.Fatal("expected notice 102 to be deleted")
	}
	if len(m.visible) != 2 {
		t.Fatalf("expected 2 visible notices, got %d", len(m.visible))
	}
	if !strings.Contains(m.toast, "Mid-Sem Exam Schedule") {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestDeleteIsAdminOnly(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleStudent)

	press(m, runeKey('x'))
	if m.mode != modeNormal {
		t.Fatalf("students must not open the delete dialog, got mode %d", m.mode)
	}
	if len(b.Notices()) != 3 {
		t.Fatal("notice removed by a student")
	}
}

func TestAdminFormValidationAndPublish(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleAdmin)

	press(m, runeKey('3'))
	finishTransition(m)
	if m.section != sectionAdmin {
		t.Fatalf("expected admin section, got %s", m.section)
	}

	press(m, runeKey('n'))
	if m.mode != modeForm {
		t.Fatalf("expected form mode, got %d", m.mode)
	}
	press(m, enterKey)
	if _, ok := m.form.errs["title"]; !ok {
		t.Fatalf("expected a title error, got %v", m.form.errs)
	}
	if _, ok := m.form.errs["description"]; !ok {
		t.Fatalf("expected a description error, got %v", m.form.errs)
	}
	if len(b.Notices()) != 3 {
		t.Fatal("invalid draft was stored")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "title is required") {
		t.Fatalf("expected inline validation message:\n%s", view)
	}

	typeText(m, "Maintenance")
	press(m, tabKey)
	typeText(m, "Tonight")
	press(m, tabKey, rightKey) // department: cs
	press(m, enterKey)

	if m.mode != modeNormal {
		t.Fatalf("expected form to close, mode %d errs %v", m.mode, m.form.errs)
	}
	if m.toast != "Notice published" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
	if m.form.title.Value() != "" {
		t.Fatal("expected the form to reset")
	}
	if !m.transiting || m.next != sectionNotices {
		t.Fatal("expected a transition back to notices")
	}

	notices := b.Notices()
	if len(notices) != 4 {
		t.Fatalf("expected 4 notices, got %d", len(notices))
	}
	added := notices[0]
	if added.Title != "Maintenance" || added.Department != "cs" || added.Date != "2026-02-15" {
		t.Fatalf("unexpected notice %+v", added)
	}
}

func TestManualSlideshow(t *testing.T) {
	m, clk, _ := newTestModel(t, notice.RoleStudent)

	press(m, runeKey('s'))
	if m.slides.State() != slideshow.Presenting || !m.showing {
		t.Fatalf("expected presenting, got %s", m.slides.State())
	}
	if !m.fullscreen {
		t.Fatal("expected fullscreen on an 80x24 terminal")
	}
	if m.slideTotal != 6 || m.slideIndex != 0 {
		t.Fatalf("unexpected position %d/%d", m.slideIndex, m.slideTotal)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "URGENT NOTICE") || !strings.Contains(view, "1 / 6") {
		t.Fatalf("expected the urgent slide:\n%s", view)
	}

	h, ok := clk.pending(15 * time.Second)
	if !ok {
		t.Fatal("expected a rotation timer")
	}
	fire(m, h)
	if m.slideIndex != 1 || m.slide.Kind != slideshow.KindEvent {
		t.Fatalf("expected the first event slide, got index %d", m.slideIndex)
	}
	fire(m, h)
	if m.slideIndex != 1 {
		t.Fatal("stale rotation tick advanced the slideshow")
	}

	press(m, runeKey('j'))
	if m.slides.State() != slideshow.Presenting {
		t.Fatal("ordinary keys must not stop the slideshow")
	}

	press(m, escKey)
	if m.slides.State() != slideshow.Idle || m.showing || m.fullscreen {
		t.Fatalf("expected idle after esc, got %s", m.slides.State())
	}
}

func TestSlideshowWithNoContent(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleStudent)
	ctx := context.Background()
	for _, n := range b.Notices() {
		if err := b.DeleteNotice(ctx, n.ID); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range b.Events() {
		if err := b.DeleteEvent(ctx, e.ID); err != nil {
			t.Fatal(err)
		}
	}

	press(m, runeKey('s'))
	if m.slides.State() != slideshow.Idle {
		t.Fatalf("expected idle, got %s", m.slides.State())
	}
	if m.toast != slideshow.NoContentMessage {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestIdleWatchdogAndBlockers(t *testing.T) {
	m, clk, _ := newTestModel(t, notice.RoleStudent)

	press(m, enterKey)
	if m.mode != modeDetail {
		t.Fatalf("expected detail dialog, got mode %d", m.mode)
	}
	if _, ok := clk.pending(60 * time.Second); ok {
		t.Fatal("an open dialog must disarm the watchdog")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Mid-Sem Exam Schedule") {
		t.Fatalf("expected detail view:\n%s", view)
	}

	press(m, escKey)
	h, ok := clk.pending(60 * time.Second)
	if !ok {
		t.Fatal("closing the dialog should rearm the watchdog")
	}

	fire(m, h)
	if m.slides.State() != slideshow.Presenting || !m.slides.Auto() {
		t.Fatalf("expected auto presentation, got %s", m.slides.State())
	}

	m.Update(tea.MouseClickMsg{})
	if m.slides.State() != slideshow.Idle || m.showing {
		t.Fatalf("click should stop the slideshow, got %s", m.slides.State())
	}
}

func TestIdleBurstKeepsOneTimer(t *testing.T) {
	now := testNow
	clock := func() time.Time { return now }
	b := board.New(store.NewMemory(), board.WithClock(clock))
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	b.SetRole(notice.RoleStudent)
	m := newModel(context.Background(), b, Options{
		Rotate: 15 * time.Second,
		Idle:   60 * time.Second,
		Now:    clock,
	}, nil)
	m.Init()
	t.Cleanup(m.Close)

	timers := m.timers
	if timers == nil || !timers.live || len(timers.armed) != 1 {
		t.Fatal("expected one armed watchdog after Init")
	}
	first := timers.gen
	firstWake := timers.wakeAt

	for i := 0; i < 500; i++ {
		now = now.Add(100 * time.Millisecond)
		m.Update(tea.MouseMotionMsg{})
	}
	if timers.gen != first {
		t.Fatalf("activity started %d extra ticks", timers.gen-first)
	}
	if len(timers.armed) != 1 {
		t.Fatalf("expected one armed timer, got %d", len(timers.armed))
	}
	lastActivity := now

	// The live tick fires at the original deadline and re-aims at the new one.
	now = firstWake
	m.Update(timerWakeMsg{gen: first})
	if m.slides.State() != slideshow.Idle {
		t.Fatalf("watchdog fired early, got %s", m.slides.State())
	}
	if !timers.live || timers.gen != first+1 || !timers.wakeAt.Equal(lastActivity.Add(60*time.Second)) {
		t.Fatalf("expected one tick aimed at %v, got %v", lastActivity.Add(60*time.Second), timers.wakeAt)
	}

	now = timers.wakeAt
	m.Update(timerWakeMsg{gen: first})
	if m.slides.State() != slideshow.Idle {
		t.Fatal("superseded tick must be ignored")
	}
	m.Update(timerWakeMsg{gen: timers.gen})
	if m.slides.State() != slideshow.Presenting || !m.slides.Auto() {
		t.Fatalf("expected auto presentation, got %s", m.slides.State())
	}
	if len(timers.armed) != 1 || !timers.wakeAt.Equal(now.Add(15*time.Second)) {
		t.Fatalf("expected only the rotation timer, got %d armed", len(timers.armed))
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleAdmin)

	press(m, runeKey('3'))
	finishTransition(m)
	press(m, runeKey('L'))

	if m.mode != modeLogin {
		t.Fatalf("expected login dialog, got mode %d", m.mode)
	}
	if b.Role() != notice.RoleNone {
		t.Fatalf("expected role cleared, got %s", b.Role())
	}
	if m.section != sectionNotices {
		t.Fatalf("expected to leave the admin tab, got %s", m.section)
	}
}

func TestBoardChangeRefreshes(t *testing.T) {
	m, _, b := newTestModel(t, notice.RoleStudent)

	_, err := b.AddNotice(context.Background(), notice.Notice{
		Title:       "Hostel water supply",
		Description: "Interrupted from 2pm.",
		Date:        "2026-02-15",
		Department:  notice.All,
		Category:    "public",
		Urgent:      true,
	})
	if err != nil {
		t.Fatalf("AddNotice: %v", err)
	}
	m.Update(boardChangedMsg{})
	if len(m.visible) != 4 || len(m.urgent) != 2 {
		t.Fatalf("expected refresh, got %d visible %d urgent", len(m.visible), len(m.urgent))
	}
	if ticker := stripANSI(m.viewTicker(200)); !strings.Contains(ticker, "Hostel water supply") {
		t.Fatalf("expected ticker to carry the new notice: %q", ticker)
	}
}

func TestStaleClockTickIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, notice.RoleStudent)

	later := testNow.Add(time.Minute)
	m.Update(clockTickMsg{t: later, gen: m.clockGen - 1})
	if !m.clock.Equal(testNow) {
		t.Fatal("stale tick updated the clock")
	}
	m.Update(clockTickMsg{t: later, gen: m.clockGen})
	if !m.clock.Equal(later) {
		t.Fatal("expected the clock to advance")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
