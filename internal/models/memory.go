package models

import (
	"time"
)

// MerchantMemoryEntry maps a normalized merchant name to the category a
// human confirmed for it. Only explicit "remember" confirmations create or
// update entries; the categorization path reads them as a prior.
type MerchantMemoryEntry struct {
	Merchant    string    `yaml:"merchant"`
	Category    string    `yaml:"category"`
	Confidence  int       `yaml:"confidence"`
	Corrections int       `yaml:"corrections"`
	LastUsedAt  time.Time `yaml:"last_used_at"`
}
