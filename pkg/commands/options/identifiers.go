package options

import (
	"fmt"

	"github.com/spf13/cobra"
)

// IDOptions selects a notice or event by id, or asks listings to print ids.
type IDOptions struct {
	ShowID bool
	ID     int64
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each notice or event.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().Int64Var(&o.ID, "id", 0,
		"Id of the notice or event, as shown by --show-id.")
	_ = cmd.MarkFlagRequired("id")
}

// Validate rejects ids no record can have. Seed ids start at 1 and created
// ids are millisecond timestamps.
func (o *IDOptions) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("invalid --id %d, ids are positive", o.ID)
	}
	return nil
}
