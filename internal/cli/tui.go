package cli

import (
	"github.com/spf13/cobra"

	"github.com/andy/boutiquebill/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive invoice wizard. You will be asked to log in first if needed.`,
	RunE:  launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(appInstance)
}
