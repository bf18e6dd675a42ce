// Package extract implements the dual-strategy text-to-transaction
// extractor: provider-specific pattern matching first, an AI fallback when
// the pattern result is incomplete or weak, and a field-by-field merge.
package extract

import (
	"context"
	"time"

	"finsignal/txengine/internal/ai"
	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
)

// Options configure an Extractor.
type Options struct {
	// LocalCurrency is the household's default currency code.
	LocalCurrency string
	// AITimeout bounds the single outbound call to the AI service.
	AITimeout time.Duration
	// ValidityThreshold is the minimum confidence for a gated extraction
	// to be admitted. Zero means the standard threshold.
	ValidityThreshold int
	// TrustedThreshold replaces ValidityThreshold when the trigger gate is
	// skipped. Zero means the standard trusted threshold.
	TrustedThreshold int
}

// Extractor runs the full extraction pipeline for one raw notification.
// Stateless apart from its collaborators; safe for concurrent use.
type Extractor struct {
	patterns *PatternExtractor
	aiClient ai.Client
	opts     Options
	logger   logging.Logger
}

// NewExtractor creates an Extractor. aiClient may be nil, in which case the
// pipeline is pattern-only.
func NewExtractor(aiClient ai.Client, opts Options, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.LocalCurrency == "" {
		opts.LocalCurrency = "ILS"
	}
	if opts.AITimeout <= 0 {
		opts.AITimeout = 15 * time.Second
	}
	if opts.ValidityThreshold <= 0 {
		opts.ValidityThreshold = models.ValidityThreshold
	}
	if opts.TrustedThreshold <= 0 {
		opts.TrustedThreshold = models.TrustedValidityThreshold
	}
	return &Extractor{
		patterns: NewPatternExtractor(),
		aiClient: aiClient,
		opts:     opts,
		logger:   logger,
	}
}

// Extract turns a raw notification into a MergedExtraction. Extraction
// failures never propagate as errors: irrelevant text is rejected with
// IsValid=false, and an unavailable AI service degrades to the pattern-only
// result.
func (e *Extractor) Extract(ctx context.Context, n models.RawNotification, skipTriggerGate bool) models.MergedExtraction {
	if !skipTriggerGate && !HasTriggerPhrase(n.Text) {
		e.logger.Debug("notification rejected by trigger pre-filter",
			logging.Field{Key: logging.FieldSource, Value: n.Source})
		return models.Rejected(n.Text)
	}

	pattern := e.patterns.Extract(n.Text, n.ReceivedAt)

	var aiResp ai.FieldResponse
	if e.needsFallback(pattern) {
		aiResp = e.invokeFallback(ctx, n.Text)
	}

	merged := mergeFields(pattern, aiResp, e.opts.LocalCurrency)

	threshold := e.opts.ValidityThreshold
	if skipTriggerGate {
		// The trusted direct-ingestion path accepts a weaker signal
		// because the source already guarantees relevance.
		threshold = e.opts.TrustedThreshold
	}

	result := models.MergedExtraction{
		ExtractedFields: merged,
		IsValid:         merged.Confidence >= threshold,
		RawMessage:      n.Text,
	}

	e.logger.Info("extraction completed",
		logging.Field{Key: logging.FieldProvider, Value: merged.Provider},
		logging.Field{Key: logging.FieldConfidence, Value: merged.Confidence},
		logging.Field{Key: "is_valid", Value: result.IsValid})
	return result
}

// needsFallback reports whether the pattern result is weak enough to spend
// an AI call on: merchant missing or confidence below the admission
// threshold.
func (e *Extractor) needsFallback(pattern models.ExtractedFields) bool {
	if e.aiClient == nil {
		return false
	}
	return pattern.MerchantName == "" || pattern.Confidence < e.opts.ValidityThreshold
}

// invokeFallback performs the single bounded outbound call. Any failure
// returns an empty response so the merge proceeds pattern-only.
func (e *Extractor) invokeFallback(ctx context.Context, rawText string) ai.FieldResponse {
	callCtx, cancel := context.WithTimeout(ctx, e.opts.AITimeout)
	defer cancel()

	resp, err := e.aiClient.ExtractFields(callCtx, rawText)
	if err != nil {
		e.logger.WithError(err).Warn("AI fallback extraction failed, using pattern-only result")
		return ai.FieldResponse{}
	}
	return resp
}
