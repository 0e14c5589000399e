package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(campusboard completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(campusboard completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// idCompletions offers notice (or event) ids with their titles as hints.
func idCompletions(events bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		env, err := openBoard(context.Background(), true)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer env.Close()

		var out []string
		add := func(id int64, title string) {
			s := strconv.FormatInt(id, 10)
			if strings.HasPrefix(s, toComplete) {
				out = append(out, s+"\t"+title)
			}
		}
		if events {
			for _, e := range env.Board.Events() {
				add(e.ID, e.Title)
			}
		} else {
			for _, n := range env.Board.Notices() {
				add(n.ID, n.Title)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
