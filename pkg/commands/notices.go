package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/runner/get"
)

func addNotices(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "notices",
		Aliases: []string{"notice", "ls"},
		Short:   "List notices, urgent first then newest",
		Example: `
campusboard notices
campusboard notices --search exam
campusboard notices --dept cs --category academic --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			criteria, err := fo.Criteria()
			if err != nil {
				return output.HandleError(err)
			}
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return output.HandleError(err)
			}
			defer env.Close()

			g := get.Get{
				What:     get.Notices,
				Criteria: criteria,
				ShowID:   io.ShowID,
				JSON:     output.JSON,
				Width:    80,
				Board:    env.Board,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addEvents(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	upcoming := false

	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "List events",
		Example: `
campusboard events
campusboard events --upcoming
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return output.HandleError(err)
			}
			defer env.Close()

			g := get.Get{
				What:     get.Events,
				Upcoming: upcoming,
				ShowID:   io.ShowID,
				JSON:     output.JSON,
				Board:    env.Board,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Only events from today onward.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addUsers(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Example: `
campusboard users
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return output.HandleError(err)
			}
			defer env.Close()

			g := get.Get{
				What:  get.Users,
				JSON:  output.JSON,
				Board: env.Board,
				Out:   cmd.OutOrStdout(),
			}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
