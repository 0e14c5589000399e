package slideshow

import (
	"context"
	"sync"
	"time"
)

// Loop is a Clock backed by real timers. Run delivers fires and queued calls
// on a single goroutine, so the Scheduler never sees concurrent calls.
type Loop struct {
	fires chan Handle
	calls chan func()
	done  chan struct{}

	mu     sync.Mutex
	timers map[Handle]*time.Timer
}

// NewLoop returns an idle Loop. Pass it as the Scheduler's Clock, then call Run.
func NewLoop() *Loop {
	return &Loop{
		fires:  make(chan Handle),
		calls:  make(chan func()),
		done:   make(chan struct{}),
		timers: make(map[Handle]*time.Timer),
	}
}

// Arm implements Clock.
func (l *Loop) Arm(h Handle, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timers[h] = time.AfterFunc(d, func() {
		select {
		case l.fires <- h:
		case <-l.done:
		}
	})
}

// Disarm implements Clock.
func (l *Loop) Disarm(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// Do runs fn on the loop goroutine and waits for it. It returns false if the
// loop has exited.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	select {
	case l.calls <- func() { fn(); close(finished) }:
	case <-l.done:
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Run serves s until ctx is done. The scheduler is stopped on the way out.
func (l *Loop) Run(ctx context.Context, s *Scheduler) error {
	defer func() {
		s.Stop()
		close(l.done)
		l.mu.Lock()
		for h, t := range l.timers {
			t.Stop()
			delete(l.timers, h)
		}
		l.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case h := <-l.fires:
			l.mu.Lock()
			delete(l.timers, h)
			l.mu.Unlock()
			s.Fire(h)
		case fn := <-l.calls:
			fn()
		}
	}
}
