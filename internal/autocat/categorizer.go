package autocat

import (
	"context"
	"fmt"
	"strings"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/normalize"
	"finsignal/txengine/internal/store"
)

// keywordCategories maps merchant keywords to categories when merchant
// memory has no prior. Checked after the memory lookup, before giving up.
var keywordCategories = map[string]string{
	"supermarket": "Groceries",
	"market":      "Groceries",
	"shufersal":   "Groceries",
	"victory":     "Groceries",
	"pharm":       "Health",
	"pharmacy":    "Health",
	"restaurant":  "Restaurants",
	"cafe":        "Restaurants",
	"coffee":      "Restaurants",
	"pizza":       "Restaurants",
	"sushi":       "Restaurants",
	"wolt":        "Restaurants",
	"taxi":        "Transport",
	"gett":        "Transport",
	"bus":         "Transport",
	"rail":        "Transport",
	"fuel":        "Car",
	"paz":         "Car",
	"sonol":       "Car",
	"spotify":     "Subscriptions",
	"netflix":     "Subscriptions",
	"apple":       "Subscriptions",
	"amazon":      "Shopping",
	"ebay":        "Shopping",
	"aliexpress":  "Shopping",
	"zara":        "Shopping",
	"atm":         "Withdrawals",
	"withdrawal":  "Withdrawals",
}

// Categorizer assigns categories using the merchant-memory prior first and
// the keyword table as fallback.
type Categorizer struct {
	memory store.MerchantMemory
	logger logging.Logger
}

// NewCategorizer creates a Categorizer.
func NewCategorizer(memory store.MerchantMemory, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{memory: memory, logger: logger}
}

// Categorize returns the category for a merchant name, or false when no
// path produced one. Storage failures propagate; a missing prior does not.
func (c *Categorizer) Categorize(householdID, merchant string) (string, bool, error) {
	normalized := normalize.Merchant(merchant)
	if normalized == "" {
		return "", false, nil
	}

	if c.memory != nil {
		category, found, err := c.memory.Lookup(householdID, normalized)
		if err != nil {
			return "", false, fmt.Errorf("merchant memory lookup: %w", err)
		}
		if found {
			c.logger.Debug("category from merchant memory",
				logging.Field{Key: logging.FieldMerchant, Value: normalized},
				logging.Field{Key: logging.FieldCategory, Value: category})
			return category, true, nil
		}
	}

	for keyword, category := range keywordCategories {
		if strings.Contains(normalized, keyword) {
			return category, true, nil
		}
	}
	return "", false, nil
}

// Remember records a human-confirmed category. Called only on an explicit
// remember instruction.
func (c *Categorizer) Remember(householdID, merchant, category string) error {
	normalized := normalize.Merchant(merchant)
	if normalized == "" {
		return fmt.Errorf("empty merchant name")
	}
	return c.memory.Upsert(householdID, normalized, category)
}

// Apply evaluates the trigger for a transaction and, when permitted, runs
// the categorization path and persists the result with auto provenance.
// Returns the decision that was made either way.
func (c *Categorizer) Apply(ctx context.Context, txStore store.TransactionStore, tx *models.CanonicalTransaction, trigger models.TriggerEvent, newMerchantInfo string) (Decision, error) {
	decision := Decide(trigger, tx.Category, tx.CategorySource, newMerchantInfo, tx.Merchant)
	if !decision.ShouldRun {
		return decision, nil
	}

	merchant := tx.Merchant
	if newMerchantInfo != "" {
		merchant = newMerchantInfo
	}

	category, found, err := c.Categorize(tx.HouseholdID, merchant)
	if err != nil {
		return decision, err
	}
	if !found {
		return decision, nil
	}

	if err := txStore.UpdateCategory(ctx, tx.HouseholdID, tx.ID, category, models.CategorySourceAuto); err != nil {
		return decision, err
	}
	tx.Category = category
	tx.CategorySource = models.CategorySourceAuto
	return decision, nil
}
