package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLinked(t *testing.T) {
	tests := []struct {
		name     string
		tx       CanonicalTransaction
		expected bool
	}{
		{"fresh record", CanonicalTransaction{}, false},
		{"flagged duplicate", CanonicalTransaction{IsDuplicate: true}, true},
		{"points at canonical", CanonicalTransaction{DuplicateOf: "tx-1"}, true},
		{"carries a receipt", CanonicalTransaction{ReceiptID: "r-1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tx.IsLinked())
		})
	}
}

func TestHasCategory(t *testing.T) {
	assert.False(t, CanonicalTransaction{}.HasCategory())
	assert.True(t, CanonicalTransaction{Category: "Groceries"}.HasCategory())
}

func TestTriggerClasses(t *testing.T) {
	creations := []TriggerEvent{TriggerSMSReceived, TriggerScreenshotImported, TriggerEmailReceived, TriggerStatementImported}
	for _, trigger := range creations {
		assert.True(t, trigger.IsCreation(), "%s", trigger)
		assert.False(t, trigger.IsEnrichment(), "%s", trigger)
		assert.False(t, trigger.IsConfirmation(), "%s", trigger)
	}

	enrichments := []TriggerEvent{TriggerReceiptLinked, TriggerMerchantEnriched}
	for _, trigger := range enrichments {
		assert.True(t, trigger.IsEnrichment(), "%s", trigger)
		assert.False(t, trigger.IsCreation(), "%s", trigger)
	}

	assert.True(t, TriggerUserConfirmed.IsConfirmation())
	assert.False(t, TriggerUserConfirmed.IsCreation())
	assert.False(t, TriggerUserConfirmed.IsEnrichment())
}
