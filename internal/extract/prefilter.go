package extract

import (
	"strings"
)

// triggerVocabulary lists the "transaction occurred" phrases a notification
// must contain to be considered relevant. Text that matches none of them is
// rejected before any extraction work, unless the caller bypasses the gate
// for a trusted source.
var triggerVocabulary = []string{
	"charged",
	"purchase of",
	"payment of",
	"you paid",
	"transaction of",
	"debited",
	"was approved",
	"בוצעה עסקה",
	"חויב",
	"חיוב בסך",
	"שילמת",
	"תשלום בסך",
	"אושרה עסקה",
}

// HasTriggerPhrase reports whether the text matches the known transaction
// phrase vocabulary.
func HasTriggerPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range triggerVocabulary {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
