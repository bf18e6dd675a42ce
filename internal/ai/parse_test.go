package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractionResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected FieldResponse
		wantErr  bool
	}{
		{
			name: "plain JSON",
			raw:  `{"cardEnding":"8770","merchantName":"MerchantX","amount":"143.42","currency":"ILS","transactionDate":"2026-01-29","confidence":85}`,
			expected: FieldResponse{
				CardEnding:      "8770",
				MerchantName:    "MerchantX",
				Amount:          "143.42",
				Currency:        "ILS",
				TransactionDate: "2026-01-29",
				Confidence:      85,
			},
		},
		{
			name: "json code fence",
			raw: "```json\n" +
				`{"merchantName":"Cafe Gold","amount":"50","confidence":70}` +
				"\n```",
			expected: FieldResponse{MerchantName: "Cafe Gold", Amount: "50", Confidence: 70},
		},
		{
			name: "bare code fence",
			raw: "```\n" +
				`{"merchantName":"Wolt","confidence":60}` +
				"\n```",
			expected: FieldResponse{MerchantName: "Wolt", Confidence: 60},
		},
		{
			name:     "chatter around the object",
			raw:      `Sure, here is the extraction: {"merchantName":"Wolt","confidence":60} Hope that helps!`,
			expected: FieldResponse{MerchantName: "Wolt", Confidence: 60},
		},
		{
			name:     "numeric amount",
			raw:      `{"amount":19.99,"confidence":50}`,
			expected: FieldResponse{Amount: float64(19.99), Confidence: 50},
		},
		{
			name:     "confidence clamped high",
			raw:      `{"merchantName":"X","confidence":140}`,
			expected: FieldResponse{MerchantName: "X", Confidence: 100},
		},
		{
			name:     "confidence clamped low",
			raw:      `{"merchantName":"X","confidence":-5}`,
			expected: FieldResponse{MerchantName: "X", Confidence: 0},
		},
		{
			name:    "no JSON at all",
			raw:     "I could not find any transaction in that text.",
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			raw:     `{"merchantName":"Wolt","conf`,
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseExtractionResponse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp)
		})
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		name     string
		amount   interface{}
		expected string
	}{
		{"string amount", " 143.42 ", "143.42"},
		{"float amount", float64(19.99), "19.99"},
		{"whole float trims zeros", float64(50), "50"},
		{"nil amount", nil, ""},
		{"unexpected type", []string{"x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FieldResponse{Amount: tt.amount}.AmountString())
		})
	}
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt(`charged 50 at "Cafe" Gold`)

	assert.Contains(t, prompt, "exactly one JSON object")
	assert.Contains(t, prompt, "transactionDate")
	// The notification is quoted so embedded quotes cannot break the prompt.
	assert.Contains(t, prompt, `\"Cafe\"`)
	assert.True(t, strings.HasSuffix(prompt, `"`))
}
