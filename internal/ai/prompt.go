package ai

import (
	"fmt"
)

// BuildExtractionPrompt embeds the raw notification into the fixed
// extraction schema. The service is instructed to answer with exactly one
// JSON object; anything else is treated as no signal by the parser.
func BuildExtractionPrompt(rawText string) string {
	return fmt.Sprintf(
		`You are a financial assistant. Extract transaction fields from a payment notification.

Respond with exactly one JSON object (no extra text), matching this schema:
{
  "cardEnding":      string,  # last 4 digits of the card, or "" if absent
  "merchantName":    string,  # merchant or counterparty name, or "" if absent
  "amount":          string,  # decimal magnitude without separators, or "" if absent
  "currency":        string,  # ISO currency code, or "" if absent
  "transactionDate": string,  # YYYY-MM-DD, or "" if absent
  "confidence":      number   # your confidence 0-100
}

Examples:

Input: "Your card ending 8770 was charged 143.42 at MerchantX on 29/01"
Output:
{"cardEnding":"8770","merchantName":"MerchantX","amount":"143.42","currency":"","transactionDate":"","confidence":85}

Input: "You paid 50 ILS to Dana via bit"
Output:
{"cardEnding":"","merchantName":"Dana","amount":"50","currency":"ILS","transactionDate":"","confidence":70}

Now extract from this notification:
%q`,
		rawText,
	)
}
