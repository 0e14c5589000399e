package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a notice or an event",
		Example: `
campusboard delete notice --id 101 --yes
campusboard delete event --id 202 --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDeleteKind(cmd, "notice", false)
	addDeleteKind(cmd, "event", true)

	topLevel.AddCommand(cmd)
}

func addDeleteKind(topLevel *cobra.Command, noun string, event bool) {
	io := &options.IDOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   noun,
		Short: "Delete a " + noun + " by id",
		Long: "Delete a " + noun + " by id. Deletion cannot be undone, so --yes is required.\n" +
			"Deleting an id that does not exist is not an error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := io.Validate(); err != nil {
				return output.HandleError(err)
			}
			if err := co.Check(); err != nil {
				return output.HandleError(err)
			}
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return output.HandleError(err)
			}
			defer env.Close()

			r := remove.Remove{
				ID:    io.ID,
				Event: event,
				Board: env.Board,
				Out:   cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddIDArgs(cmd, io)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("id", idCompletions(event))

	topLevel.AddCommand(cmd)
}
