// Package add creates notices and events from the command line.
package add

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/printers"
)

// Add stores exactly one of Notice or Event.
type Add struct {
	Notice *notice.Notice
	Event  *notice.Event
	ShowID bool

	Board *board.Board
	Out   io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Board == nil {
		return errors.New("can not add, no board")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}

	switch {
	case n.Notice != nil:
		added, err := n.Board.AddNotice(ctx, *n.Notice)
		if err != nil {
			return err
		}
		pp.NewLine()
		pp.Title("Notice published")
		pp.Notices(added)
	case n.Event != nil:
		added, err := n.Board.AddEvent(ctx, *n.Event)
		if err != nil {
			return err
		}
		pp.NewLine()
		pp.Title("Event scheduled")
		pp.Events(added)
	default:
		return errors.New("nothing to add")
	}
	return nil
}
