// Package session registers users and manages the signed in account.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
)

// Action selects what Session.Do performs.
type Action int

const (
	Whoami Action = iota
	Register
	Login
	Logout
)

type Session struct {
	Action Action
	User   notice.User

	Board *board.Board
	Out   io.Writer
}

func (s *Session) Do(ctx context.Context) error {
	if s.Board == nil {
		return errors.New("can not manage session, no board")
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}
	ok := color.New(color.FgHiGreen)

	switch s.Action {
	case Register:
		u, err := s.Board.Register(ctx, s.User)
		if err != nil {
			return err
		}
		_, _ = ok.Fprintf(out, "registered %s as %s\n", u.Username, u.Role)
	case Login:
		u, err := s.Board.Login(ctx, s.User.Username, s.User.Password, s.User.Role)
		if err != nil {
			return err
		}
		_, _ = ok.Fprintf(out, "signed in as %s (%s)\n", u.Name, u.Role)
	case Logout:
		if err := s.Board.Logout(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "signed out")
	case Whoami:
		u, signedIn := s.Board.CurrentUser()
		if !signedIn {
			_, _ = color.New(color.Faint).Fprintln(out, "not signed in")
			return nil
		}
		_, _ = fmt.Fprintf(out, "%s (%s) %s\n", u.Name, u.Username, u.Role)
	default:
		return fmt.Errorf("unknown session action %d", s.Action)
	}
	return nil
}
