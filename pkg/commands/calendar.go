package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/runner/month"
)

func addCalendar(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var (
		monthFlag string
		upcoming  int
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month with its event days highlighted",
		Example: `
campusboard calendar
campusboard calendar --month 2026-02
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			m := month.Month{
				Upcoming: upcoming,
				ShowID:   io.ShowID,
				Out:      cmd.OutOrStdout(),
			}
			if monthFlag != "" {
				y, mon, ok := calendar.ParseMonth(monthFlag)
				if !ok {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", monthFlag)
				}
				m.Year, m.Month = y, mon
			}

			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer env.Close()
			m.Board = env.Board

			return m.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Month to show as YYYY-MM. Defaults to the current month.")
	cmd.Flags().IntVar(&upcoming, "upcoming", 5, "Also list this many upcoming events. Zero to skip.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
