package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/board"
)

// OutputOptions switches command output to JSON.
type OutputOptions struct {
	JSON bool
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON, errors included.")
}

type jsonError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HandleError prints err as a JSON object when --json is set and swallows
// it, so scripts always read one document. Validation failures list the
// offending fields.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	body := jsonError{Error: err.Error()}
	var verr *board.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	b, merr := json.Marshal(body)
	if merr != nil {
		return merr
	}
	out := o.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, string(b))
	return nil
}
