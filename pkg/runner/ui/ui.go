package ui

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/board"
	tuiapp "tableflip.dev/campusboard/pkg/tui/app"
)

// UI runs the interactive campus board.
type UI struct {
	Board  *board.Board
	Rotate time.Duration
	Idle   time.Duration
	Log    zerolog.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Board == nil {
		return errors.New("can not start ui, no board")
	}
	u.Log.Info().Dur("rotate", u.Rotate).Dur("idle", u.Idle).Msg("starting ui")
	return tuiapp.Run(ctx, u.Board, tuiapp.Options{
		Rotate: u.Rotate,
		Idle:   u.Idle,
		Logger: u.Log,
	})
}
