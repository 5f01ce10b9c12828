package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/boutiquebill/internal/app"
)

var appInstance *app.App

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "boutiquebill",
	Short: "Invoices and order messages for tailoring boutiques",
	Long: `BoutiqueBill walks you through a tailoring invoice step by step: shop,
customer, services with measurements, payment, and a final preview you can
export as PDF or send to the customer on WhatsApp.

By default, running boutiquebill without arguments launches the interactive TUI.
Use subcommands for scripted use with YAML drafts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd.Context())
	},
	RunE: launchTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// Close releases the app, if one was created
func Close() error {
	if appInstance == nil {
		return nil
	}
	return appInstance.Close()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func initApp(ctx context.Context) error {
	if appInstance != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, app.Options{ConfigPath: configPath, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	appInstance = a
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/boutiquebill/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug logs")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(resetCmd)
}
