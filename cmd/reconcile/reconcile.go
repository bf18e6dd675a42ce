// Package reconcile implements the CLI command that runs a duplicate
// reconciliation pass over a household's transactions.
package reconcile

import (
	"context"
	"errors"

	"finsignal/txengine/cmd/common"
	"finsignal/txengine/cmd/root"
	"finsignal/txengine/internal/config"
	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/match"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/reconcile"
	"finsignal/txengine/internal/txerrors"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	file      string
	household string
)

// Cmd is the reconcile command.
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Pair app-channel transactions against card-channel transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			return err
		}

		logger := logging.NewLogrusAdapterFromLogger(root.Log)
		txStore, transactions, err := common.LoadTransactions(file, household)
		if err != nil {
			return err
		}

		matcher := match.NewMatcher(match.Options{
			ReconcileWindowDays: cfg.Matching.ReconcileWindowDays,
			ReceiptWindowDays:   cfg.Matching.ReceiptWindowDays,
			CorrelatedTolerance: decimal.NewFromFloat(cfg.Matching.CorrelatedTolerance),
			StrictTolerance:     decimal.NewFromFloat(cfg.Matching.StrictTolerance),
		}, logger)
		reconciler := reconcile.NewReconciler(txStore, matcher, logger)

		ctx := context.Background()
		merged := 0
		for i := range transactions {
			if transactions[i].Channel != models.ChannelApp {
				continue
			}
			candidate, err := txStore.Get(ctx, household, transactions[i].ID)
			if err != nil {
				return err
			}
			if _, err := reconciler.Reconcile(ctx, candidate); err != nil {
				if errors.Is(err, txerrors.ErrNoCandidate) {
					continue
				}
				return err
			}
			merged++
		}

		root.Log.WithField(logging.FieldCount, merged).Info("Reconciliation pass finished")
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the household's transactions")
	Cmd.Flags().StringVar(&household, "household", "", "Household ID")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("household")
}
