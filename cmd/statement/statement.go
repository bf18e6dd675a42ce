// Package statement implements the CLI command that imports a credit-card
// statement CSV.
package statement

import (
	"finsignal/txengine/cmd/common"
	"finsignal/txengine/cmd/root"
	"finsignal/txengine/internal/config"
	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/statement"

	"github.com/spf13/cobra"
)

var (
	input     string
	household string
)

// Cmd is the statement command.
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Import credit-card statement CSV rows as card-channel transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			return err
		}

		logger := logging.NewLogrusAdapterFromLogger(root.Log)
		transactions, err := statement.ParseFile(input, household, cfg.Household.LocalCurrency, logger)
		if err != nil {
			return err
		}
		return common.WriteYAML(transactions)
	},
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Statement CSV file")
	Cmd.Flags().StringVar(&household, "household", "", "Household ID owning the rows")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("household")
}
