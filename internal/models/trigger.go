package models

// TriggerEvent is a lifecycle event that may invoke automatic
// categorization. The decision engine groups triggers into three classes:
// creation, enrichment, and confirmation.
type TriggerEvent string

const (
	TriggerSMSReceived        TriggerEvent = "sms_received"
	TriggerScreenshotImported TriggerEvent = "screenshot_imported"
	TriggerEmailReceived      TriggerEvent = "email_received"
	TriggerStatementImported  TriggerEvent = "statement_imported"
	TriggerReceiptLinked      TriggerEvent = "receipt_linked"
	TriggerMerchantEnriched   TriggerEvent = "merchant_enriched"
	TriggerUserConfirmed      TriggerEvent = "user_confirmed"
)

// IsCreation reports whether the trigger belongs to the fresh-ingestion
// class: a brand-new record that has no categorization yet.
func (t TriggerEvent) IsCreation() bool {
	switch t {
	case TriggerSMSReceived, TriggerScreenshotImported,
		TriggerEmailReceived, TriggerStatementImported:
		return true
	}
	return false
}

// IsEnrichment reports whether the trigger adds detail to an existing
// record, such as a later-arriving receipt.
func (t TriggerEvent) IsEnrichment() bool {
	return t == TriggerReceiptLinked || t == TriggerMerchantEnriched
}

// IsConfirmation reports whether the trigger confirms an existing record
// without adding new information.
func (t TriggerEvent) IsConfirmation() bool {
	return t == TriggerUserConfirmed
}
