// Package export writes the board contents as JSON, a data URI or a PDF.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/exporter"
	"tableflip.dev/campusboard/pkg/filter"
)

// Export writes the snapshot to Out, or to File when set. PDF writes the
// printable notice sheet instead of JSON.
type Export struct {
	DataURI bool
	PDF     bool
	File    string

	Board *board.Board
	Out   io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Board == nil {
		return errors.New("can not export, no board")
	}
	out := e.Out
	if out == nil {
		out = color.Output
	}

	var (
		data []byte
		err  error
	)
	switch {
	case e.PDF:
		if e.File == "" {
			return errors.New("--pdf needs an output file")
		}
		data, err = exporter.PDF(exporter.Sheet{
			Title:   "Campus Notice Board",
			Notices: filter.Criteria{}.Apply(e.Board.Notices()),
			Events:  e.Board.Events(),
		})
	case e.DataURI:
		var uri string
		uri, err = exporter.DataURI(e.Board.Export())
		data = []byte(uri + "\n")
	default:
		data, err = exporter.JSON(e.Board.Export(), "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return err
	}

	if e.File == "" {
		_, err = out.Write(data)
		return err
	}
	if dir := filepath.Dir(e.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: ensure dir: %w", err)
		}
	}
	if err := os.WriteFile(e.File, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", e.File, err)
	}
	_, _ = fmt.Fprintf(out, "wrote %s (%d bytes)\n", e.File, len(data))
	return nil
}
