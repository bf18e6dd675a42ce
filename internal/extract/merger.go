package extract

import (
	"time"

	"finsignal/txengine/internal/ai"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/normalize"

	"github.com/shopspring/decimal"
)

// mergeFields combines the pattern and AI results field by field. The
// pattern result wins when present; the AI result fills the gaps. Currency
// defaults to the household's local currency unless the pattern extractor
// found an explicit symbol in the text. Confidence is recomputed from the
// merged field set with the standard weights, not blended from the two
// input confidences.
func mergeFields(pattern models.ExtractedFields, aiResp ai.FieldResponse, localCurrency string) models.ExtractedFields {
	merged := models.ExtractedFields{
		Provider: pattern.Provider,
	}

	merged.CardEnding = pattern.CardEnding
	if merged.CardEnding == "" {
		merged.CardEnding = aiResp.CardEnding
	}

	merged.MerchantName = pattern.MerchantName
	if merged.MerchantName == "" {
		merged.MerchantName = normalize.CleanRaw(aiResp.MerchantName)
	}

	merged.Amount = pattern.Amount
	if merged.Amount == nil {
		if raw := aiResp.AmountString(); raw != "" {
			if amount, err := decimal.NewFromString(raw); err == nil {
				abs := amount.Abs()
				merged.Amount = &abs
			}
		}
	}

	merged.TransactionDate = pattern.TransactionDate
	if merged.TransactionDate == nil && aiResp.TransactionDate != "" {
		if date, err := time.Parse("2006-01-02", aiResp.TransactionDate); err == nil {
			merged.TransactionDate = &date
		}
	}

	merged.Currency = pattern.Currency
	if merged.Currency == "" {
		merged.Currency = localCurrency
	}

	merged.Confidence = merged.Score()
	return merged
}
