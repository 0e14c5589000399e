// Package remove deletes notices and events.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/printers"
)

// Remove deletes the notice or event with ID. A missing id is not an error.
type Remove struct {
	ID    int64
	Event bool
	Board *board.Board
	Out   io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Board == nil {
		return errors.New("can not delete, no board")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}

	if n.Event {
		before := len(n.Board.Events())
		if err := n.Board.DeleteEvent(ctx, n.ID); err != nil {
			return err
		}
		report(out, before-len(n.Board.Events()), "event", n.ID)
		pp.TitleWithCount("Events", len(n.Board.Events()), "event")
		pp.Events(n.Board.Events()...)
		return nil
	}

	before := len(n.Board.Notices())
	if err := n.Board.DeleteNotice(ctx, n.ID); err != nil {
		return err
	}
	report(out, before-len(n.Board.Notices()), "notice", n.ID)
	notices := filter.Criteria{}.Apply(n.Board.Notices())
	pp.TitleWithCount("Notices", len(notices), "notice")
	pp.Notices(notices...)
	return nil
}

func report(out io.Writer, removed int, noun string, id int64) {
	_, _ = fmt.Fprintln(out, "")
	if removed == 0 {
		_, _ = color.New(color.Faint).Fprintf(out, "no %s with id %d\n\n", noun, id)
		return
	}
	_, _ = fmt.Fprintf(out, "deleted %s %d\n\n", noun, id)
}
