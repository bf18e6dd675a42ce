// Package root contains the root command for the application.
package root

import (
	"finsignal/txengine/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "txengine",
		Short: "Extract, reconcile and categorize financial-transaction signals.",
		Long: `txengine ingests transaction signals from SMS notifications, payment-app
screenshots, email receipts and statement rows, extracts structured fields,
links records from different sources that describe the same transaction,
and gates automatic categorization on prior user intent.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to txengine!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return Cmd.Execute()
}
