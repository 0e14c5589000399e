package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/campusboard/pkg/slideshow"
)

// Slide prints one slideshow slide with its position in the queue.
func (pp *PrettyPrint) Slide(s slideshow.Slide, index, total int) {
	tag := color.New(color.FgHiCyan, color.Bold)
	if s.Urgent {
		tag = color.New(color.FgHiRed, color.Bold)
	}
	faint := color.New(color.Faint)

	rule := 40
	if pp.Width > 0 {
		rule = pp.Width
	}
	_, _ = faint.Fprintln(pp.out(), strings.Repeat("-", rule))
	_, _ = tag.Fprintf(pp.out(), "%s", s.Tag())
	_, _ = faint.Fprintf(pp.out(), "  %d/%d\n", index+1, total)
	_, _ = color.New(color.Bold).Fprintln(pp.out(), s.Title())
	_, _ = faint.Fprintln(pp.out(), s.Meta())
	if body := s.Body(); body != "" {
		_, _ = fmt.Fprintln(pp.out(), pp.indent(body))
	}
}
