// Package autocat decides whether an automatic categorization pass may run
// for a lifecycle event, and runs the categorization path it gates.
package autocat

import (
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/normalize"
)

// Decision is the outcome of the trigger evaluation.
type Decision struct {
	ShouldRun bool
	Reason    string
}

// Decision reasons.
const (
	ReasonUserCategorized   = "user_categorized"
	ReasonConfirmation      = "confirmation_preserves_category"
	ReasonNewTransaction    = "new_transaction"
	ReasonNoNewMerchantInfo = "no_new_merchant_info"
	ReasonFirstMerchantInfo = "first_merchant_info"
	ReasonBetterMerchant    = "better_merchant_info"
	ReasonAutoAdequate      = "existing_auto_category_adequate"
	ReasonNoRule            = "no_trigger_rule"
)

// Decide evaluates the trigger against the record's categorization
// provenance. Pure function, no I/O; all state it reads belongs to the
// transaction. The rules are evaluated in fixed priority order and the
// first match wins — the ordering itself is load-bearing.
func Decide(trigger models.TriggerEvent, currentCategory string, categorySource models.CategorySource, newMerchantInfo, previousMerchant string) Decision {
	// Rule 1: user intent is terminal. No automated trigger overrides it.
	if categorySource == models.CategorySourceUserManual {
		return Decision{ShouldRun: false, Reason: ReasonUserCategorized}
	}

	// Rule 2: a confirmation is not new information.
	if trigger.IsConfirmation() {
		return Decision{ShouldRun: false, Reason: ReasonConfirmation}
	}

	// Rule 3: a brand-new record has no categorization yet.
	if trigger.IsCreation() {
		return Decision{ShouldRun: true, Reason: ReasonNewTransaction}
	}

	// Rule 4: enrichment runs only when the new merchant text adds value.
	if trigger.IsEnrichment() {
		if newMerchantInfo == "" {
			return Decision{ShouldRun: false, Reason: ReasonNoNewMerchantInfo}
		}
		if currentCategory == "" {
			return Decision{ShouldRun: true, Reason: ReasonFirstMerchantInfo}
		}
		if categorySource == models.CategorySourceAuto {
			if merchantInfoIsBetter(newMerchantInfo, previousMerchant) {
				return Decision{ShouldRun: true, Reason: ReasonBetterMerchant}
			}
			return Decision{ShouldRun: false, Reason: ReasonAutoAdequate}
		}
		// Rule-sourced categories are kept; user_manual is already
		// excluded by rule 1.
		return Decision{ShouldRun: false, Reason: ReasonAutoAdequate}
	}

	// Rule 5: default.
	return Decision{ShouldRun: false, Reason: ReasonNoRule}
}

// merchantInfoIsBetter reports whether the new merchant text is a stronger
// signal than the previous one: longer, or carrying characters from a
// script the previous text lacked (a more specific, localized name).
func merchantInfoIsBetter(newInfo, previous string) bool {
	if len([]rune(newInfo)) > len([]rune(previous)) {
		return true
	}
	return normalize.HasNewScript(newInfo, previous)
}
