package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps the log output filterable across components.
const (
	FieldHousehold   = "household_id"
	FieldProvider    = "provider"
	FieldSource      = "source"
	FieldChannel     = "channel"
	FieldMerchant    = "merchant"
	FieldAmount      = "amount"
	FieldConfidence  = "confidence"
	FieldTransaction = "transaction_id"
	FieldCandidate   = "candidate_id"
	FieldReason      = "reason"
	FieldTrigger     = "trigger"
	FieldCategory    = "category"
	FieldOperation   = "operation"
	FieldCount       = "count"
	FieldError       = "error"
)
