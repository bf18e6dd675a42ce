package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider identifies the notification issuer whose rule set applies.
type Provider string

const (
	ProviderVisaCal   Provider = "visa_cal"
	ProviderIsracard  Provider = "isracard"
	ProviderMax       Provider = "max"
	ProviderLeumiCard Provider = "leumi_card"
	ProviderBit       Provider = "bit"
	ProviderPaybox    Provider = "paybox"
	ProviderUnknown   Provider = "unknown"
)

// Confidence weights per extracted field. Amount carries the most weight
// because it is the most decision-critical field; the sum caps at 100.
const (
	WeightCardEnding = 30
	WeightAmount     = 40
	WeightMerchant   = 20
	WeightDate       = 10
)

// Admission thresholds for extraction confidence. The trusted threshold
// applies when the caller bypasses the trigger gate, because that path
// already guarantees the text is transaction-related.
const (
	ValidityThreshold        = 70
	TrustedValidityThreshold = 40
)

// RawNotification is a free-text transaction signal as it arrived.
// Immutable; not persisted beyond the extraction step.
type RawNotification struct {
	Text       string
	Source     Source
	ReceivedAt time.Time
}

// ExtractedFields holds the structured fields pulled out of a notification.
// Pointer fields are nil when the field was absent from the text.
type ExtractedFields struct {
	CardEnding      string
	Amount          *decimal.Decimal
	Currency        string
	MerchantName    string
	TransactionDate *time.Time
	Provider        Provider
	Confidence      int
}

// HasAmount reports whether an amount was extracted.
func (f ExtractedFields) HasAmount() bool {
	return f.Amount != nil
}

// HasDate reports whether a transaction date was extracted.
func (f ExtractedFields) HasDate() bool {
	return f.TransactionDate != nil
}

// Score recomputes confidence from field presence. Confidence is always a
// deterministic function of which fields are present, never carried over
// from an earlier computation.
func (f ExtractedFields) Score() int {
	score := 0
	if f.CardEnding != "" {
		score += WeightCardEnding
	}
	if f.Amount != nil {
		score += WeightAmount
	}
	if f.MerchantName != "" {
		score += WeightMerchant
	}
	if f.TransactionDate != nil {
		score += WeightDate
	}
	return score
}

// MergedExtraction is the final result of the extraction pipeline.
// Created once per ingestion event and never mutated afterward.
type MergedExtraction struct {
	ExtractedFields
	IsValid    bool
	RawMessage string
}

// Rejected returns the result used for text that failed the relevance
// pre-filter or produced no usable fields.
func Rejected(rawMessage string) MergedExtraction {
	return MergedExtraction{
		ExtractedFields: ExtractedFields{Provider: ProviderUnknown},
		IsValid:         false,
		RawMessage:      rawMessage,
	}
}
