package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SlideshowOptions{}
	role := ""

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the campus board in the terminal",
		Example: `
campusboard ui
campusboard ui --role admin --idle 30s
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("ui needs an interactive terminal; try `campusboard slideshow` instead")
			}

			env, err := openBoard(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer env.Close()

			rotate, idle, err := so.Durations(env.Settings)
			if err != nil {
				return err
			}
			if role != "" {
				r, ok := notice.ParseRole(role)
				if !ok {
					return errors.New("unknown role " + role)
				}
				env.Board.SetRole(r)
			}

			i := ui.UI{
				Board:  env.Board,
				Rotate: rotate,
				Idle:   idle,
				Log:    env.Log,
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddSlideshowArgs(cmd, so)
	cmd.Flags().StringVar(&role, "role", "", "Skip the role prompt: student, faculty or admin.")

	topLevel.AddCommand(cmd)
}
