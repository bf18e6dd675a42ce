// Package confirm implements the CLI command that records a human
// confirmation of a transaction, optionally fixing its category.
package confirm

import (
	"context"

	"finsignal/txengine/cmd/common"
	"finsignal/txengine/cmd/root"
	"finsignal/txengine/internal/autocat"
	"finsignal/txengine/internal/config"
	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/store"

	"github.com/spf13/cobra"
)

var (
	file      string
	household string
	id        string
	category  string
	remember  bool
)

// Cmd is the confirm command.
var Cmd = &cobra.Command{
	Use:   "confirm",
	Short: "Record a human confirmation of a transaction",
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

		ctx := context.Background()
		if category != "" {
			if err := txStore.UpdateCategory(ctx, household, id, category, models.CategorySourceUserManual); err != nil {
				return err
			}
		}
		if err := txStore.Confirm(ctx, household, id); err != nil {
			return err
		}

		if remember && category != "" {
			memory, err := store.NewYAMLMerchantMemory(cfg.Data.MerchantMemoryFile)
			if err != nil {
				return err
			}
			tx, err := txStore.Get(ctx, household, id)
			if err != nil {
				return err
			}
			categorizer := autocat.NewCategorizer(memory, logger)
			if err := categorizer.Remember(household, tx.Merchant, category); err != nil {
				return err
			}
			if err := memory.Save(); err != nil {
				return err
			}
		}

		tx, err := txStore.Get(ctx, household, id)
		if err != nil {
			return err
		}
		return common.WriteYAML(tx)
	},
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the household's transactions")
	Cmd.Flags().StringVar(&household, "household", "", "Household ID")
	Cmd.Flags().StringVar(&id, "id", "", "Transaction ID to confirm")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Category confirmed by the user")
	Cmd.Flags().BoolVar(&remember, "remember", false, "Remember the merchant-to-category mapping for this household")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("household")
	_ = Cmd.MarkFlagRequired("id")
}
