package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the local store",
	Long: `Delete everything kept in the encrypted local store, including the
logged-in user. Configuration and exported PDFs are not touched.

Examples:
  boutiquebill reset
  boutiquebill reset --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt("This will clear the local store and log you out. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.StateRepo.Clear(cmd.Context()); err != nil {
			return err
		}
		appInstance.Logger.Info("local store cleared")

		fmt.Println("Local store cleared.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip confirmation")
}
