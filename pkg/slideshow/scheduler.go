// Package slideshow presents notices and events as a rotating queue of
// slides. Presentation starts manually or after a period without input and
// stops only on an explicit stop.
package slideshow

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/timeutil"
)

// ErrNoContent is returned by Start when there is nothing to present.
var ErrNoContent = errors.New("slideshow: no content to display")

// NoContentMessage is shown when a manual start finds an empty queue.
const NoContentMessage = "No content to display!"

// State is the scheduler's mode.
type State int

const (
	// Idle waits for input; the idle watchdog is armed.
	Idle State = iota
	// Presenting shows slides; the rotation timer is armed.
	Presenting
	// Suspended waits for blockers to clear; nothing is armed.
	Suspended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Handle identifies one armed timer. Every arm uses a fresh handle, so a
// handle that fires after it was replaced or cleared is recognized as stale.
type Handle uint64

// Clock delivers timer fires back to the scheduler. After d elapses the
// owner of the clock must call Scheduler.Fire(h) on the scheduler's goroutine.
type Clock interface {
	Arm(h Handle, d time.Duration)
	// Disarm is advisory; a disarmed handle that still fires is ignored.
	Disarm(h Handle)
}

// Presenter paints the slideshow.
type Presenter interface {
	ShowSlide(s Slide, index, total int)
	HideSlides()
	EnterFullscreen() error
	ExitFullscreen() error
	Notify(msg string)
}

// Source provides the collections a queue is built from.
type Source interface {
	Notices() []notice.Notice
	Events() []notice.Event
}

// Options configures a Scheduler.
type Options struct {
	Rotate time.Duration
	Idle   time.Duration
	Logger zerolog.Logger
}

// Scheduler is the slideshow state machine. It is not safe for concurrent
// use; all calls, including Fire, must come from one goroutine.
type Scheduler struct {
	clock     Clock
	presenter Presenter
	source    Source
	rotate    time.Duration
	idle      time.Duration
	log       zerolog.Logger

	state      State
	auto       bool
	fullscreen bool
	queue      []Slide
	index      int
	blockers   map[string]struct{}

	last    Handle
	idleH   Handle
	rotateH Handle
	shownAt time.Time
	now     func() time.Time
}

// New creates a Scheduler in Suspended state. Call Begin to arm the idle
// watchdog.
func New(clock Clock, presenter Presenter, source Source, opts Options) *Scheduler {
	if opts.Rotate <= 0 {
		opts.Rotate = timeutil.DefaultRotate
	}
	if opts.Idle <= 0 {
		opts.Idle = timeutil.DefaultIdle
	}
	return &Scheduler{
		clock:     clock,
		presenter: presenter,
		source:    source,
		rotate:    opts.Rotate,
		idle:      opts.Idle,
		log:       opts.Logger,
		state:     Suspended,
		blockers:  make(map[string]struct{}),
		now:       time.Now,
	}
}

// Begin enters Idle and arms the idle watchdog, unless a blocker is already
// registered or a presentation is running.
func (s *Scheduler) Begin() {
	if s.state == Presenting {
		return
	}
	s.settle()
}

// State reports the current mode.
func (s *Scheduler) State() State { return s.state }

// Auto reports whether the running presentation was started by the watchdog.
func (s *Scheduler) Auto() bool { return s.auto }

// RotatePeriod is how long each slide is shown.
func (s *Scheduler) RotatePeriod() time.Duration { return s.rotate }

// IdleTimeout is the watchdog period.
func (s *Scheduler) IdleTimeout() time.Duration { return s.idle }

// Queue returns the queue of the running presentation.
func (s *Scheduler) Queue() []Slide {
	return append([]Slide(nil), s.queue...)
}

// Index is the position of the slide on screen.
func (s *Scheduler) Index() int { return s.index }

// Current returns the slide on screen.
func (s *Scheduler) Current() (Slide, bool) {
	if s.state != Presenting || len(s.queue) == 0 {
		return Slide{}, false
	}
	return s.queue[s.index], true
}

// Progress is the fraction of the rotation period the current slide has
// been visible, clamped to [0, 1].
func (s *Scheduler) Progress(now time.Time) float64 {
	if s.state != Presenting {
		return 0
	}
	p := float64(now.Sub(s.shownAt)) / float64(s.rotate)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Activity records user input. In Idle it restarts the watchdog from zero.
// It never stops a presentation.
func (s *Scheduler) Activity() {
	if s.state != Idle {
		return
	}
	s.armIdle()
}

// Start begins a presentation by user request. An empty queue is refused
// with ErrNoContent and a notification, leaving the state unchanged.
func (s *Scheduler) Start() error {
	if s.state == Presenting {
		return nil
	}
	return s.start(false)
}

// Stop ends a presentation. It reports whether one was running.
func (s *Scheduler) Stop() bool {
	if s.state != Presenting {
		return false
	}
	s.clearRotate()
	s.queue = nil
	s.index = 0
	s.auto = false
	s.presenter.HideSlides()
	if s.fullscreen {
		s.fullscreen = false
		if err := s.presenter.ExitFullscreen(); err != nil {
			s.log.Debug().Err(err).Msg("exit fullscreen")
		}
	}
	s.log.Debug().Msg("slideshow stopped")
	s.settle()
	return true
}

// Block registers a named condition, such as an open dialog, that keeps the
// watchdog from firing. Blocking while presenting takes effect on Stop.
func (s *Scheduler) Block(name string) {
	s.blockers[name] = struct{}{}
	if s.state == Idle {
		s.clearIdle()
		s.state = Suspended
	}
}

// Unblock removes a blocker. When none remain the watchdog restarts.
func (s *Scheduler) Unblock(name string) {
	if _, ok := s.blockers[name]; !ok {
		return
	}
	delete(s.blockers, name)
	if s.state == Suspended {
		s.settle()
	}
}

// Blocked reports whether any blocker is registered.
func (s *Scheduler) Blocked() bool { return len(s.blockers) > 0 }

// Fire handles an elapsed timer. Stale handles are ignored; Fire reports
// whether h was live.
func (s *Scheduler) Fire(h Handle) bool {
	switch {
	case h == 0:
		return false
	case h == s.idleH && s.state == Idle:
		s.idleH = 0
		s.log.Debug().Msg("idle timeout")
		if err := s.start(true); err != nil {
			s.log.Debug().Err(err).Msg("idle start")
		}
		return true
	case h == s.rotateH && s.state == Presenting:
		s.rotateH = 0
		s.index = (s.index + 1) % len(s.queue)
		s.show()
		s.armRotate()
		return true
	default:
		return false
	}
}

func (s *Scheduler) start(auto bool) error {
	queue := BuildQueue(s.source.Notices(), s.source.Events())
	if len(queue) == 0 {
		if auto {
			s.armIdle()
			return nil
		}
		s.presenter.Notify(NoContentMessage)
		return ErrNoContent
	}

	s.clearIdle()
	s.state = Presenting
	s.auto = auto
	s.queue = queue
	s.index = 0
	if err := s.presenter.EnterFullscreen(); err != nil {
		s.log.Debug().Err(err).Msg("fullscreen unavailable")
	} else {
		s.fullscreen = true
	}
	s.log.Info().Bool("auto", auto).Int("slides", len(queue)).Msg("slideshow started")
	s.show()
	s.armRotate()
	return nil
}

// settle leaves Presenting or Suspended for Idle, or Suspended while
// blockers remain.
func (s *Scheduler) settle() {
	if len(s.blockers) > 0 {
		s.clearIdle()
		s.state = Suspended
		return
	}
	s.state = Idle
	s.armIdle()
}

func (s *Scheduler) show() {
	s.shownAt = s.now()
	s.presenter.ShowSlide(s.queue[s.index], s.index, len(s.queue))
}

func (s *Scheduler) armIdle() {
	s.clearIdle()
	s.idleH = s.nextHandle()
	s.clock.Arm(s.idleH, s.idle)
}

func (s *Scheduler) armRotate() {
	s.clearRotate()
	s.rotateH = s.nextHandle()
	s.clock.Arm(s.rotateH, s.rotate)
}

func (s *Scheduler) clearIdle() {
	if s.idleH != 0 {
		s.clock.Disarm(s.idleH)
		s.idleH = 0
	}
}

func (s *Scheduler) clearRotate() {
	if s.rotateH != 0 {
		s.clock.Disarm(s.rotateH)
		s.rotateH = 0
	}
}

func (s *Scheduler) nextHandle() Handle {
	s.last++
	return s.last
}
