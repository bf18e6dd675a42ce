package models

import (
	"time"
)

// CanonicalTransaction is the persisted transaction record. One household
// exclusively owns each record; the engine never resolves household
// identity itself.
type CanonicalTransaction struct {
	ID                 string          `json:"id" yaml:"id"`
	HouseholdID        string          `json:"household_id" yaml:"household_id"`
	Date               time.Time       `json:"date" yaml:"date"`
	Merchant           string          `json:"merchant" yaml:"merchant"`
	NormalizedMerchant string          `json:"normalized_merchant" yaml:"normalized_merchant"`
	Amount             Money           `json:"amount" yaml:"amount"`
	Type               TransactionType `json:"type" yaml:"type"`
	Channel            Channel         `json:"channel" yaml:"channel"`
	CardEnding         string          `json:"card_ending,omitempty" yaml:"card_ending,omitempty"`
	Category           string          `json:"category,omitempty" yaml:"category,omitempty"`
	CategorySource     CategorySource  `json:"category_source,omitempty" yaml:"category_source,omitempty"`
	Status             string          `json:"status" yaml:"status"`
	Verified           bool            `json:"verified" yaml:"verified"`
	Notes              string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	RawText            string          `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
	IsDuplicate        bool            `json:"is_duplicate" yaml:"is_duplicate"`
	DuplicateOf        string          `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`
	ReceiptID          string          `json:"receipt_id,omitempty" yaml:"receipt_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at" yaml:"created_at"`
}

// IsLinked reports whether this record already participates in a merge,
// on either side of the pair.
func (t CanonicalTransaction) IsLinked() bool {
	return t.IsDuplicate || t.DuplicateOf != "" || t.ReceiptID != ""
}

// HasCategory reports whether any categorization has been applied.
func (t CanonicalTransaction) HasCategory() bool {
	return t.Category != ""
}
