package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/runner/present"
)

func addSlideshow(topLevel *cobra.Command) {
	so := &options.SlideshowOptions{}
	auto := false

	cmd := &cobra.Command{
		Use:   "slideshow",
		Short: "Print the slideshow to stdout until interrupted",
		Long: `Run the kiosk slideshow without the full-screen UI. Urgent notices come
first, then up to five events, then up to five other notices. Each slide is
shown for --rotate before the next one is printed.

With --auto the slideshow waits for the idle timeout before starting, as the
UI does. Stop with Ctrl-C.`,
		Example: `
campusboard slideshow
campusboard slideshow --rotate 5s
campusboard slideshow --auto --idle 30s
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openBoard(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer env.Close()

			rotate, idle, err := so.Durations(env.Settings)
			if err != nil {
				return err
			}
			p := present.Present{
				Rotate: rotate,
				Idle:   idle,
				Auto:   auto,
				Width:  72,
				Board:  env.Board,
				Out:    cmd.OutOrStdout(),
				Log:    env.Log,
			}
			return p.Do(cmd.Context())
		},
	}

	options.AddSlideshowArgs(cmd, so)
	cmd.Flags().BoolVar(&auto, "auto", false, "Wait for the idle timeout instead of starting right away.")

	topLevel.AddCommand(cmd)
}
