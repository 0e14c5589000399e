package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a notice or an event",
		Example: `
campusboard add notice Library closed on Friday -m "Stock taking" --dept all --category public
campusboard add event Hackathon --on 2026-03-02 --at 09:30 --venue "Lab 3"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNotice(cmd)
	addEvent(cmd)

	topLevel.AddCommand(cmd)
}

func addNotice(topLevel *cobra.Command) {
	no := &options.NoticeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "notice <title>",
		Aliases: []string{"notices"},
		Short:   "Publish a notice",
		Example: `
campusboard add notice Mid-sem results out -m "Check the portal" --dept exam --category academic --urgent
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			no.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return output.HandleError(err)
			}
			defer env.Close()

			draft := no.Notice(time.Now())
			a := add.Add{
				Notice: &draft,
				ShowID: io.ShowID,
				Board:  env.Board,
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddNoticeArgs(cmd, no)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addEvent(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "event <title>",
		Aliases: []string{"events"},
		Short:   "Schedule an event",
		Example: `
campusboard add event Guest lecture --on 2026-02-24 --at 15:00 --venue "Seminar Hall" --dept cs
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			eo.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return output.HandleError(err)
			}
			defer env.Close()

			draft := eo.Event()
			a := add.Add{
				Event:  &draft,
				ShowID: io.ShowID,
				Board:  env.Board,
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
