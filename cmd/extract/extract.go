// Package extract implements the CLI command that runs the extraction
// pipeline over a single notification text.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finsignal/txengine/cmd/root"
	"finsignal/txengine/internal/ai"
	"finsignal/txengine/internal/config"
	"finsignal/txengine/internal/extract"
	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"

	"github.com/spf13/cobra"
)

var (
	message string
	source  string
	trusted bool
)

// Cmd is the extract command.
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured transaction fields from a notification text",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			return err
		}

		logger := logging.NewLogrusAdapterFromLogger(root.Log)

		var aiClient ai.Client
		if cfg.AI.Enabled {
			aiClient = ai.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, logger)
		}

		extractor := extract.NewExtractor(aiClient, extract.Options{
			LocalCurrency:     cfg.Household.LocalCurrency,
			AITimeout:         time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
			ValidityThreshold: cfg.Extraction.ValidityThreshold,
			TrustedThreshold:  cfg.Extraction.TrustedThreshold,
		}, logger)

		notification := models.RawNotification{
			Text:       message,
			Source:     models.Source(source),
			ReceivedAt: time.Now().UTC(),
		}

		result := extractor.Extract(context.Background(), notification, trusted)

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&message, "message", "m", "", "Raw notification text")
	Cmd.Flags().StringVarP(&source, "source", "s", string(models.SourceSMS), "Signal source: sms, ocr or email")
	Cmd.Flags().BoolVar(&trusted, "trusted", false, "Bypass the relevance pre-filter (trusted source)")
	_ = Cmd.MarkFlagRequired("message")
}
