package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/runner/info"
)

func addStats(topLevel *cobra.Command) {
	quiet := false

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"info"},
		Short:   "Where the board is stored and what it holds",
		Example: `
campusboard stats
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer env.Close()

			s := info.Info{
				Config: env.Settings,
				Board:  env.Board,
				Quiet:  quiet,
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the analytics.")
	topLevel.AddCommand(cmd)
}
