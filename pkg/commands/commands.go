package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/campusboard/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "campusboard",
		Short: base.Wrap80("Campus notices, events and a kiosk slideshow in the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addNotices(topLevel)
	addEvents(topLevel)
	addUsers(topLevel)
	addCalendar(topLevel)
	addAdd(topLevel)
	addDelete(topLevel)
	addRegister(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addExport(topLevel)
	addStats(topLevel)
	addKey(topLevel)
	addSlideshow(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
