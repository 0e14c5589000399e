// Package present runs the slideshow without the terminal UI, printing each
// slide as it comes up. It is meant for kiosks that tail a log or pipe.
package present

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/printers"
	"tableflip.dev/campusboard/pkg/slideshow"
)

// Present drives a slideshow.Scheduler on real timers until ctx is done.
type Present struct {
	Rotate time.Duration
	Idle   time.Duration
	// Auto waits for the idle watchdog instead of starting right away.
	Auto  bool
	Width int

	Board *board.Board
	Out   io.Writer
	Log   zerolog.Logger
}

func (p *Present) Do(ctx context.Context) error {
	if p.Board == nil {
		return errors.New("can not present, no board")
	}
	out := p.Out
	if out == nil {
		out = color.Output
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.Board.Watch(ctx); err != nil {
		p.Log.Warn().Err(err).Msg("watch disabled, slides will not follow external edits")
	}

	loop := slideshow.NewLoop()
	s := slideshow.New(loop, &printPresenter{
		pp:  printers.PrettyPrint{Width: p.Width, Out: out},
		out: out,
		log: p.Log,
	}, p.Board, slideshow.Options{
		Rotate: p.Rotate,
		Idle:   p.Idle,
		Logger: p.Log,
	})

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, s) }()

	var startErr error
	loop.Do(func() {
		s.Begin()
		if !p.Auto {
			startErr = s.Start()
		}
	})
	if startErr != nil {
		cancel()
		<-done
		return startErr
	}
	if p.Auto {
		_, _ = color.New(color.Faint).Fprintf(out, "waiting %s before presenting\n", s.IdleTimeout())
	}

	err := <-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type printPresenter struct {
	pp  printers.PrettyPrint
	out io.Writer
	log zerolog.Logger
}

func (p *printPresenter) ShowSlide(s slideshow.Slide, index, total int) {
	p.pp.Slide(s, index, total)
}

func (p *printPresenter) HideSlides() {
	_, _ = color.New(color.Faint).Fprintln(p.out, "slideshow stopped")
}

// EnterFullscreen and ExitFullscreen have nothing to do on a plain stream.
func (p *printPresenter) EnterFullscreen() error { return nil }
func (p *printPresenter) ExitFullscreen() error  { return nil }

func (p *printPresenter) Notify(msg string) {
	p.log.Info().Msg(msg)
	_, _ = fmt.Fprintln(p.out, msg)
}
