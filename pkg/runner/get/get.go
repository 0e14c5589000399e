// Package get lists board content on the command line.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/printers"
)

// What selects the collection to list.
type What string

const (
	Notices What = "notices"
	Events  What = "events"
	Users   What = "users"
)

type Get struct {
	What     What
	Criteria filter.Criteria
	// Upcoming limits events to today and later.
	Upcoming bool
	ShowID   bool
	JSON     bool
	Width    int
	Board    *board.Board
	Out      io.Writer
	Now      func() time.Time
}

func (n *Get) Do(ctx context.Context) error {
	if n.Board == nil {
		return errors.New("can not get, no board")
	}
	if n.Now == nil {
		n.Now = time.Now
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width, Out: out}

	switch n.What {
	case Notices, "":
		notices := n.Criteria.Apply(n.Board.Notices())
		if n.JSON {
			return writeJSON(out, notices)
		}
		pp.NewLine()
		pp.TitleWithCount("Notices", len(notices), "notice")
		pp.Notices(notices...)
	case Events:
		events := n.Board.Events()
		title := "Events"
		if n.Upcoming {
			events = calendar.Upcoming(events, notice.DateString(n.Now()), 0)
			title = "Upcoming events"
		}
		if n.JSON {
			return writeJSON(out, events)
		}
		pp.NewLine()
		pp.TitleWithCount(title, len(events), "event")
		pp.Events(events...)
	case Users:
		users := n.Board.Users()
		if n.JSON {
			for i := range users {
				users[i].Password = ""
			}
			return writeJSON(out, users)
		}
		pp.NewLine()
		pp.TitleWithCount("Users", len(users), "user")
		pp.Users(users...)
	default:
		return fmt.Errorf("unknown collection %q", n.What)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
