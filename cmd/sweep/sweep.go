// Package sweep implements the CLI command that drains the uncategorized
// backlog for a household.
package sweep

import (
	"context"

	"finsignal/txengine/cmd/common"
	"finsignal/txengine/cmd/root"
	"finsignal/txengine/internal/autocat"
	"finsignal/txengine/internal/config"
	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/store"

	"github.com/spf13/cobra"
)

var (
	file      string
	household string
)

// Cmd is the sweep command.
var Cmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a bounded batch-categorization pass for a household",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			return err
		}

		logger := logging.NewLogrusAdapterFromLogger(root.Log)
		txStore, _, err := common.LoadTransactions(file, household)
		if err != nil {
			return err
		}

		memory, err := store.NewYAMLMerchantMemory(cfg.Data.MerchantMemoryFile)
		if err != nil {
			return err
		}

		categorizer := autocat.NewCategorizer(memory, logger)
		sweeper := autocat.NewSweeper(txStore, categorizer, cfg.Sweep.BatchSize, logger)

		count, err := sweeper.Run(context.Background(), household)
		if err != nil {
			return err
		}

		root.Log.WithField(logging.FieldCount, count).Info("Sweep finished")
		return memory.Save()
	},
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the household's transactions")
	Cmd.Flags().StringVar(&household, "household", "", "Household ID")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("household")
}
