package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	e := export.Export{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notices, events and users",
		Long: `Export the whole board as a JSON document {notices, events, users}.

--data-uri prints the same document as a data:text/json URI. --pdf writes a
printable notice sheet to the --out file.`,
		Example: `
campusboard export > campus_board_data.json
campusboard export --data-uri
campusboard export --pdf --out notices.pdf
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer env.Close()

			e.Board = env.Board
			e.Out = cmd.OutOrStdout()
			return e.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&e.DataURI, "data-uri", false, "Print a data URI instead of raw JSON.")
	cmd.Flags().BoolVar(&e.PDF, "pdf", false, "Write a PDF notice sheet.")
	cmd.Flags().StringVarP(&e.File, "out", "o", "", "Write to this file instead of stdout.")
	cmd.MarkFlagsMutuallyExclusive("data-uri", "pdf")

	topLevel.AddCommand(cmd)
}
