package commands

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/logging"
	"tableflip.dev/campusboard/pkg/store"
)

// boardEnv is the loaded configuration, logger and board shared by commands.
type boardEnv struct {
	Settings *store.Settings
	Board    *board.Board
	Log      zerolog.Logger

	closers []io.Closer
}

// openBoard loads config, sets up logging and loads the board. With logToFile
// the log goes to the configured file so it stays off a full-screen UI.
func openBoard(ctx context.Context, logToFile bool) (*boardEnv, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	env := &boardEnv{Settings: settings}

	var w io.Writer = os.Stderr
	if logToFile {
		f, err := logging.OpenFile(settings.Log.File)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, f)
		w = f
	}
	env.Log = logging.Setup(settings.Log.Level, settings.Log.Format, w)

	backend, err := store.Load(settings)
	if err != nil {
		env.Close()
		return nil, err
	}
	if c, ok := backend.(io.Closer); ok {
		env.closers = append(env.closers, c)
	}

	env.Board = board.New(backend, board.WithLogger(env.Log))
	if err := env.Board.Load(ctx); err != nil {
		// The seed could not be written back; the board still works in memory.
		env.Log.Warn().Err(err).Msg("persist seed data")
	}
	return env, nil
}

func (e *boardEnv) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
	e.closers = nil
}
