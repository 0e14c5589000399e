package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the departments, categories and roles",
		Long: `Print the ids accepted by --dept, --category and --role. The
department "all" addresses every department.`,
		Example: `
campusboard key
campusboard key --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
