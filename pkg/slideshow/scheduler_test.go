package slideshow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tableflip.dev/campusboard/pkg/notice"
)

type fakeClock struct {
	armed map[Handle]time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{armed: make(map[Handle]time.Duration)}
}

func (c *fakeClock) Arm(h Handle, d time.Duration) { c.armed[h] = d }
func (c *fakeClock) Disarm(h Handle)               { delete(c.armed, h) }

// pending returns the single armed handle with period d.
func (c *fakeClock) pending(t *testing.T, d time.Duration) Handle {
	t.Helper()
	var found []Handle
	for h, dd := range c.armed {
		if dd == d {
			found = append(found, h)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one timer of %v armed, got %d (%v)", d, len(found), c.armed)
	}
	return found[0]
}

// fire simulates a timer elapsing.
func (c *fakeClock) fire(s *Scheduler, h Handle) bool {
	delete(c.armed, h)
	return s.Fire(h)
}

type fakePresenter struct {
	shown         []int
	hidden        int
	notes         []string
	fullscreenErr error
	entered       int
	exited        int
}

func (p *fakePresenter) ShowSlide(_ Slide, index, _ int) { p.shown = append(p.shown, index) }
func (p *fakePresenter) HideSlides()                     { p.hidden++ }
func (p *fakePresenter) Notify(msg string)               { p.notes = append(p.notes, msg) }

func (p *fakePresenter) EnterFullscreen() error {
	p.entered++
	return p.fullscreenErr
}

func (p *fakePresenter) ExitFullscreen() error {
	p.exited++
	return nil
}

type fakeSource struct {
	notices []notice.Notice
	events  []notice.Event
}

func (f *fakeSource) Notices() []notice.Notice { return f.notices }
func (f *fakeSource) Events() []notice.Event   { return f.events }

func makeNotices(urgent, normal int) []notice.Notice {
	var out []notice.Notice
	for i := 0; i < urgent; i++ {
		out = append(out, notice.Notice{ID: int64(100 + i), Title: fmt.Sprintf("urgent %d", i), Urgent: true})
	}
	for i := 0; i < normal; i++ {
		out = append(out, notice.Notice{ID: int64(200 + i), Title: fmt.Sprintf("normal %d", i)})
	}
	return out
}

func makeEvents(n int) []notice.Event {
	var out []notice.Event
	for i := 0; i < n; i++ {
		out = append(out, notice.Event{ID: int64(300 + i), Title: fmt.Sprintf("event %d", i)})
	}
	return out
}

const (
	testRotate = 15 * time.Second
	testIdle   = 60 * time.Second
)

func newTestScheduler(src *fakeSource) (*Scheduler, *fakeClock, *fakePresenter) {
	clock := newFakeClock()
	p := &fakePresenter{}
	s := New(clock, p, src, Options{Rotate: testRotate, Idle: testIdle})
	s.Begin()
	return s, clock, p
}

func TestQueueLength(t *testing.T) {
	atMost := func(a, b int) int {
		if a < b {
			return a
		}
		return b
	}
	for urgent := 0; urgent <= 3; urgent++ {
		for normal := 0; normal <= 8; normal++ {
			for events := 0; events <= 8; events++ {
				q := BuildQueue(makeNotices(urgent, normal), makeEvents(events))
				want := urgent + atMost(5, events) + atMost(5, normal)
				if len(q) != want {
					t.Fatalf("urgent=%d normal=%d events=%d: got %d slides, want %d", urgent, normal, events, len(q), want)
				}
			}
		}
	}
}

func TestQueueOrder(t *testing.T) {
	notices := []notice.Notice{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Urgent: true},
		{ID: 3, Title: "c"},
		{ID: 4, Title: "d", Urgent: true},
	}
	q := BuildQueue(notices, makeEvents(2))
	var got []string
	for _, s := range q {
		got = append(got, s.Title())
	}
	want := []string{"b", "d", "event 0", "event 1", "a", "c"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("queue order = %v, want %v", got, want)
	}
	if !q[0].Urgent || q[0].Tag() != "URGENT NOTICE" {
		t.Fatalf("first slide should be tagged urgent, got %q", q[0].Tag())
	}
	if q[2].Kind != KindEvent || q[2].Tag() != "EVENT" {
		t.Fatalf("expected event slide, got %v", q[2].Kind)
	}
}

func TestQueueDoesNotAliasSource(t *testing.T) {
	notices := makeNotices(1, 0)
	q := BuildQueue(notices, nil)
	notices[0].Title = "changed"
	if q[0].Title() != "urgent 0" {
		t.Fatalf("queue should hold copies, got %q", q[0].Title())
	}
}

func TestBeginArmsWatchdog(t *testing.T) {
	s, clock, _ := newTestScheduler(&fakeSource{})
	if s.State() != Idle {
		t.Fatalf("expected idle, got %v", s.State())
	}
	clock.pending(t, testIdle)
}

func TestManualStartShowsFirstSlideImmediately(t *testing.T) {
	s, clock, p := newTestScheduler(&fakeSource{notices: makeNotices(1, 2), events: makeEvents(1)})

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != Presenting || s.Auto() {
		t.Fatalf("expected manual presentation, got %v auto=%v", s.State(), s.Auto())
	}
	if len(p.shown) != 1 || p.shown[0] != 0 {
		t.Fatalf("expected slide 0 shown on start, got %v", p.shown)
	}
	if p.entered != 1 {
		t.Fatalf("expected fullscreen request, got %d", p.entered)
	}
	if len(clock.armed) != 1 {
		t.Fatalf("expected only the rotation timer armed, got %v", clock.armed)
	}
	clock.pending(t, testRotate)
}

func TestRotationIndexIsTicksModLength(t *testing.T) {
	s, clock, p := newTestScheduler(&fakeSource{notices: makeNotices(1, 1), events: makeEvents(1)})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	n := len(s.Queue())
	for ticks := 1; ticks <= 10; ticks++ {
		h := clock.pending(t, testRotate)
		if !clock.fire(s, h) {
			t.Fatalf("tick %d: live rotation handle ignored", ticks)
		}
		if s.Index() != ticks%n {
			t.Fatalf("after %d ticks index = %d, want %d", ticks, s.Index(), ticks%n)
		}
	}
	if len(p.shown) != 11 {
		t.Fatalf("expected 11 slide paints, got %d", len(p.shown))
	}
}

func TestEmptyManualStartRefused(t *testing.T) {
	s, clock, p := newTestScheduler(&fakeSource{})
	idle := clock.pending(t, testIdle)

	err := s.Start()
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if s.State() != Idle {
		t.Fatalf("expected state to stay idle, got %v", s.State())
	}
	if len(p.notes) != 1 || p.notes[0] != NoContentMessage {
		t.Fatalf("expected no-content notification, got %v", p.notes)
	}
	if p.entered != 0 || len(p.shown) != 0 {
		t.Fatal("nothing should be presented")
	}
	if clock.pending(t, testIdle) != idle {
		t.Fatal("refused start should leave the watchdog running")
	}
}

func TestEmptyAutoStartIsSilent(t *testing.T) {
	s, clock, p := newTestScheduler(&fakeSource{})
	h := clock.pending(t, testIdle)

	if !clock.fire(s, h) {
		t.Fatal("idle handle should be live")
	}
	if s.State() != Idle {
		t.Fatalf("expected idle, got %v", s.State())
	}
	if len(p.notes) != 0 {
		t.Fatalf("auto start should not notify, got %v", p.notes)
	}
	if clock.pending(t, testIdle) == h {
		t.Fatal("watchdog should be rearmed with a fresh handle")
	}
}

func TestIdleWatchdogStartsPresentation(t *testing.T) {
	s, clock, p := newTestScheduler(&fakeSource{notices: makeNotices(0, 1)})
	clock.fire(s, clock.pending(t, testIdle))

	if s.State() != Presenting || !s.Auto() {
		t.Fatalf("expected auto presentation, got %v auto=%v", s.State(), s.Auto())
	}
	if p.entered != 1 {
		t.Fatalf("expected fullscreen request, got %d", p.entered)
	}
}

func TestActivityResetsWatchdog(t *testing.T) {
	s, clock, _ := newTestScheduler(&fakeSource{notices: makeNotices(0, 1)})
	first := clock.pending(t, testIdle)

	s.Activity()
	second := clock.pending(t, testIdle)
	if first == second {
		t.Fatal("activity should arm a fresh watchdog")
	}
	if s.Fire(first) {
		t.Fatal("replaced watchdog must be ignored")
	}
	if s.State() != Idle {
		t.Fatalf("stale watchdog transitioned to %v", s.State())
	}
	if !clock.fire(s, second) || s.State() != Presenting {
		t.Fatal("current watchdog should start the presentation")
	}
}

func TestActivityDoesNotStopPresentation(t *testing.T) {
	s, clock, _ := newTestScheduler(&fakeSource{notices: makeNotices(1, 0)})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Activity()
	if s.State() != Presenting {
		t.Fatalf("activity stopped the slideshow: %v", s.State())
	}
	clock.pending(t, testRotate)
}

func TestStopInvalidatesRotation(t *testing.T) {
	s, clock, p := newTestScheduler(&fakeSource{notices: makeNotices(2, 0)})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	rotate := clock.pending(t, testRotate)

	if !s.Stop() {
		t.Fatal("stop should report a running presentation")
	}
	if s.State() != Idle {
		t.Fatalf("expected idle after stop, got %v", s.State())
	}
	if p.hidden != 1 || p.exited != 1 {
		t.Fatalf("expected hide and fullscreen release, got hidden=%d exited=%d", p.hidden, p.exited)
	}
	if s.Fire(rotate) {
		t.Fatal("stale rotation tick must be ignored")
	}
	if len(p.shown) != 1 {
		t.Fatalf("stale tick painted a slide: %v", p.shown)
	}
	clock.pending(t, testIdle)
	if len(clock.armed) != 1 {
		t.Fatalf("expected only the watchdog armed, got %v", clock.armed)
	}
	if s.Stop() {
		t.Fatal("second stop should be a no-op")
	}
}

func TestFullscreenFailureDoesNotAbort(t *testing.T) {
	src := &fakeSource{notices: makeNotices(1, 0)}
	s, _, p := newTestScheduler(src)
	p.fullscreenErr = errors.New("denied")

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != Presenting {
		t.Fatalf("expected presenting, got %v", s.State())
	}
	s.Stop()
	if p.exited != 0 {
		t.Fatal("fullscreen that was never obtained should not be released")
	}
}

func TestBlockersSuspendWatchdog(t *testing.T) {
	s, clock, _ := newTestScheduler(&fakeSource{notices: makeNotices(1, 0)})
	idle := clock.pending(t, testIdle)

	s.Block("dialog")
	if s.State() != Suspended {
		t.Fatalf("expected suspended, got %v", s.State())
	}
	if len(clock.armed) != 0 {
		t.Fatalf("no timer should be armed while suspended, got %v", clock.armed)
	}
	if s.Fire(idle) {
		t.Fatal("watchdog armed before the block must be ignored")
	}
	s.Activity()
	if len(clock.armed) != 0 {
		t.Fatal("activity while suspended must not arm the watchdog")
	}

	s.Block("form")
	s.Unblock("dialog")
	if s.State() != Suspended {
		t.Fatal("one blocker remains")
	}
	s.Unblock("form")
	if s.State() != Idle {
		t.Fatalf("expected idle, got %v", s.State())
	}
	clock.pending(t, testIdle)
}

func TestStopWithBlockerSuspends(t *testing.T) {
	s, clock, _ := newTestScheduler(&fakeSource{notices: makeNotices(1, 0)})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Block("dialog")
	if s.State() != Presenting {
		t.Fatal("blocking must not stop a presentation")
	}
	s.Stop()
	if s.State() != Suspended {
		t.Fatalf("expected suspended, got %v", s.State())
	}
	if len(clock.armed) != 0 {
		t.Fatalf("expected nothing armed, got %v", clock.armed)
	}
}

func TestQueueFrozenDuringPresentation(t *testing.T) {
	src := &fakeSource{notices: makeNotices(1, 0)}
	s, _, _ := newTestScheduler(src)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	src.notices = makeNotices(3, 3)
	if len(s.Queue()) != 1 {
		t.Fatalf("queue changed mid-presentation: %d", len(s.Queue()))
	}
	s.Stop()
	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(s.Queue()) != 6 {
		t.Fatalf("queue should be rebuilt on restart, got %d", len(s.Queue()))
	}
}

func TestProgress(t *testing.T) {
	s, _, _ := newTestScheduler(&fakeSource{notices: makeNotices(1, 0)})
	base := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := s.Progress(base.Add(testRotate / 2)); got != 0.5 {
		t.Fatalf("progress = %v, want 0.5", got)
	}
	if got := s.Progress(base.Add(2 * testRotate)); got != 1 {
		t.Fatalf("progress = %v, want 1", got)
	}
}

type recordingPresenter struct {
	mu    sync.Mutex
	shown []string
	ch    chan struct{}
}

func (p *recordingPresenter) ShowSlide(s Slide, _, _ int) {
	p.mu.Lock()
	p.shown = append(p.shown, s.Title())
	p.mu.Unlock()
	select {
	case p.ch <- struct{}{}:
	default:
	}
}

func (p *recordingPresenter) HideSlides()            {}
func (p *recordingPresenter) EnterFullscreen() error { return nil }
func (p *recordingPresenter) ExitFullscreen() error  { return nil }
func (p *recordingPresenter) Notify(string)          {}

func TestLoopDrivesRotation(t *testing.T) {
	loop := NewLoop()
	p := &recordingPresenter{ch: make(chan struct{}, 8)}
	s := New(loop, p, &fakeSource{notices: makeNotices(2, 0)}, Options{Rotate: 5 * time.Millisecond, Idle: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, s) }()

	var startErr error
	if !loop.Do(func() { s.Begin(); startErr = s.Start() }) {
		t.Fatal("loop not running")
	}
	if startErr != nil {
		t.Fatalf("start: %v", startErr)
	}

	deadline := time.After(2 * time.Second)
	for seen := 0; seen < 3; {
		select {
		case <-p.ch:
			seen++
		case <-deadline:
			t.Fatal("rotation did not advance")
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("run returned %v", err)
	}
	if s.State() == Presenting {
		t.Fatal("loop exit should stop the presentation")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shown[0] != "urgent 0" || p.shown[1] != "urgent 1" || p.shown[2] != "urgent 0" {
		t.Fatalf("unexpected rotation order: %v", p.shown[:3])
	}
}
