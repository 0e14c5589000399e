// Package info reports where the board lives and what it holds.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/printers"
	"tableflip.dev/campusboard/pkg/store"
	"tableflip.dev/campusboard/pkg/timeutil"
)

// Info prints the resolved configuration followed by board analytics.
type Info struct {
	Config *store.Settings
	Board  *board.Board
	// Quiet skips the configuration block.
	Quiet bool
	Out   io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if !n.Quiet {
		if override := os.Getenv("CAMPUSBOARD_CONFIG_PATH"); override != "" {
			_, _ = fmt.Fprintln(out, "CAMPUSBOARD_CONFIG_PATH found on env, using", override)
		} else {
			_, _ = fmt.Fprintln(out, "CAMPUSBOARD_CONFIG_PATH env var not set")
		}

		if n.Config == nil {
			var err error
			n.Config, err = store.LoadConfig()
			if err != nil {
				return err
			}
		}
		_, _ = fmt.Fprintln(out, "Config.path:   ", n.Config.BasePath())
		_, _ = fmt.Fprintln(out, "Config.backend:", n.Config.Backend())
		_, _ = fmt.Fprintln(out, "Slideshow:     ", n.slideshow())
		if cur, ok := n.currentUser(); ok {
			_, _ = fmt.Fprintf(out, "Signed in as:   %s (%s)\n", cur, n.Board.Role())
		} else if n.Board != nil {
			_, _ = fmt.Fprintln(out, "Role:          ", n.Board.Role())
		}
	}

	if n.Board == nil {
		return errors.New("failed to open the board")
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Title("Analytics")
	pp.Analytics(n.Board.Analytics())
	return nil
}

// slideshow describes the configured timings, falling back to the defaults
// the ui uses when a value is missing or unparsable.
func (n *Info) slideshow() string {
	rotate, err := timeutil.ParseInterval(n.Config.Slideshow.Rotate, timeutil.DefaultRotate)
	if err != nil {
		rotate = timeutil.DefaultRotate
	}
	idle, err := timeutil.ParseInterval(n.Config.Slideshow.Idle, timeutil.DefaultIdle)
	if err != nil {
		idle = timeutil.DefaultIdle
	}
	return fmt.Sprintf("rotate every %s, start after %s idle",
		timeutil.FormatInterval(rotate), timeutil.FormatInterval(idle))
}

func (n *Info) currentUser() (string, bool) {
	if n.Board == nil {
		return "", false
	}
	u, ok := n.Board.CurrentUser()
	if !ok {
		return "", false
	}
	return u.Username, true
}
