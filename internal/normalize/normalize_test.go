package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerchant(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims and folds case",
			input:    "  SPOTIFY Premium  ",
			expected: "spotify premium",
		},
		{
			name:     "strips trailing punctuation",
			input:    "Cafe Gold...",
			expected: "cafe gold",
		},
		{
			name:     "strips boilerplate suffix",
			input:    "MerchantX for more information visit our site",
			expected: "merchantx",
		},
		{
			name:     "collapses internal whitespace",
			input:    "Uber   Eats",
			expected: "uber eats",
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
		{
			name:     "hebrew name preserved",
			input:    "סופר פארם ",
			expected: "סופר פארם",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Merchant(tt.input))
		})
	}
}

func TestCleanRaw(t *testing.T) {
	assert.Equal(t, "MerchantX", CleanRaw("MerchantX. For more information call us"))
	assert.Equal(t, "Cafe Gold", CleanRaw("Cafe Gold, "))
}

func TestSignificantWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "filters short words and stopwords",
			input:    "the coffee co and tea ltd",
			expected: []string{"coffee", "tea"},
		},
		{
			name:     "splits on punctuation",
			input:    "paypal *spotify",
			expected: []string{"paypal", "spotify"},
		},
		{
			name:     "nothing significant",
			input:    "of an it",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SignificantWords(tt.input))
		})
	}
}

func TestSharesSignificantWord(t *testing.T) {
	assert.True(t, SharesSignificantWord("amazon eu sarl", "amazon marketplace"))
	assert.False(t, SharesSignificantWord("the pay card", "pay the"))
	assert.False(t, SharesSignificantWord("", "amazon"))
}

func TestHasNewScript(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		previous  string
		expected  bool
	}{
		{
			name:      "hebrew added over latin",
			candidate: "סופר פארם",
			previous:  "SuperPharm",
			expected:  true,
		},
		{
			name:      "same script",
			candidate: "Amzn",
			previous:  "Amazon UK",
			expected:  false,
		},
		{
			name:      "latin added over hebrew",
			candidate: "Wolt",
			previous:  "וולט",
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasNewScript(tt.candidate, tt.previous))
		})
	}
}
