// Package ai integrates the external text-understanding service used as a
// fallback extractor when pattern matching produces a weak result.
package ai

import (
	"context"
)

// FieldResponse is the field set the service is asked to return as strict
// JSON. Amounts arrive as strings to avoid float precision loss.
type FieldResponse struct {
	CardEnding      string      `json:"cardEnding"`
	MerchantName    string      `json:"merchantName"`
	Amount          interface{} `json:"amount"`
	Currency        string      `json:"currency"`
	TransactionDate string      `json:"transactionDate"`
	Confidence      int         `json:"confidence"`
}

// Client is the contract with the external completion service. The single
// outbound call per extraction goes through here and must respect the
// context deadline.
type Client interface {
	// ExtractFields sends the raw notification text with the fixed
	// extraction prompt and returns the parsed field response.
	ExtractFields(ctx context.Context, rawText string) (FieldResponse, error)
}
