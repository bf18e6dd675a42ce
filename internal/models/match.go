package models

import (
	"github.com/shopspring/decimal"
)

// MatchReason records why a candidate passed the matching rules.
type MatchReason string

const (
	// ReasonMerchantCorrelated means both the amount tolerance and the
	// merchant correlation test passed. Always outranks amount-only.
	ReasonMerchantCorrelated MatchReason = "merchant_correlated"
	// ReasonAmountOnly means the amounts matched near-exactly but the
	// merchant names did not correlate.
	ReasonAmountOnly MatchReason = "amount_only"
)

// MatchCandidate pairs a pool transaction with the score it earned against
// the record being matched. Transient; only the resulting link persists.
type MatchCandidate struct {
	Transaction *CanonicalTransaction
	Reason      MatchReason
	AmountDiff  decimal.Decimal
}

// Correlated reports whether the merchant correlation test passed.
func (c MatchCandidate) Correlated() bool {
	return c.Reason == ReasonMerchantCorrelated
}
