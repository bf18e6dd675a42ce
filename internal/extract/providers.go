package extract

import (
	"regexp"

	"finsignal/txengine/internal/models"
)

// fieldPatterns is an ordered list of extraction rules per field. For each
// field the provider-specific patterns are tried first, then the generic
// fallbacks, stopping at the first match.
type fieldPatterns struct {
	card     []*regexp.Regexp
	amount   []*regexp.Regexp
	merchant []*regexp.Regexp
	date     []*regexp.Regexp
	currency []*regexp.Regexp
}

// providerRules binds an issuer's detection phrases to its field patterns.
// Adding a provider is a table change, not a code change.
type providerRules struct {
	provider models.Provider
	phrases  []*regexp.Regexp
	patterns fieldPatterns
}

// providerTable is checked in fixed priority order: issuer-specific phrases
// win over the generic fallback patterns.
var providerTable = []providerRules{
	{
		provider: models.ProviderVisaCal,
		phrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bcal\b`),
			regexp.MustCompile(`ויזה כאל`),
		},
		patterns: fieldPatterns{
			card: []*regexp.Regexp{
				regexp.MustCompile(`(?i)card ending (?:in |with )?(\d{4})`),
				regexp.MustCompile(`בכרטיס.{0,12}?(\d{4})`),
			},
			amount: []*regexp.Regexp{
				regexp.MustCompile(`(?i)charged\s+(?:ils|nis|₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
				regexp.MustCompile(`בסך\s*(?:₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
			},
			merchant: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s+on\s+\d|\s*\.?\s*$)`),
				regexp.MustCompile(`ב-\s*(.+?)(?:\s+בתאריך|\s*\.?\s*$)`),
			},
		},
	},
	{
		provider: models.ProviderIsracard,
		phrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)isracard`),
			regexp.MustCompile(`ישראכרט`),
		},
		patterns: fieldPatterns{
			amount: []*regexp.Regexp{
				regexp.MustCompile(`(?i)purchase of\s+(?:ils|nis|₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
				regexp.MustCompile(`חיוב בסך\s*(?:₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
			},
			merchant: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s+was approved|\s+on\s+\d|\s*\.?\s*$)`),
			},
		},
	},
	{
		provider: models.ProviderMax,
		phrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bmax\b`),
			regexp.MustCompile(`מקס`),
		},
		patterns: fieldPatterns{
			amount: []*regexp.Regexp{
				regexp.MustCompile(`(?i)transaction of\s+(?:ils|nis|₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
			},
		},
	},
	{
		provider: models.ProviderLeumiCard,
		phrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)leumi`),
			regexp.MustCompile(`לאומי`),
		},
		patterns: fieldPatterns{},
	},
	{
		provider: models.ProviderBit,
		phrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bbit\b`),
			regexp.MustCompile(`ביט`),
		},
		patterns: fieldPatterns{
			amount: []*regexp.Regexp{
				regexp.MustCompile(`(?i)you paid\s+(?:ils|nis|₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
				regexp.MustCompile(`שילמת\s*(?:₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
			},
			merchant: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bto\s+(.+?)(?:\s+on\s+\d|\s*\.?\s*$)`),
				regexp.MustCompile(`ל-\s*(.+?)(?:\s+בתאריך|\s*\.?\s*$)`),
			},
		},
	},
	{
		provider: models.ProviderPaybox,
		phrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)paybox`),
		},
		patterns: fieldPatterns{
			amount: []*regexp.Regexp{
				regexp.MustCompile(`(?i)payment of\s+(?:ils|nis|₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
			},
			merchant: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bto\s+(.+?)(?:\s+on\s+\d|\s*\.?\s*$)`),
			},
		},
	},
}

// genericPatterns are the ordered fallback rules tried when the provider's
// own patterns miss (or the provider is unknown).
var genericPatterns = fieldPatterns{
	card: []*regexp.Regexp{
		regexp.MustCompile(`(?i)card ending (?:in |with )?(\d{4})`),
		regexp.MustCompile(`(?i)ending in (\d{4})`),
		regexp.MustCompile(`(?i)card\s*(?:no\.?|number)?\s*[x*]+(\d{4})`),
		regexp.MustCompile(`בכרטיס.{0,12}?(\d{4})`),
	},
	amount: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:charged|purchase of|payment of|transaction of|debited|you paid)\s+(?:ils|nis|usd|eur|gbp|₪|\$|€|£)?\s*([\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?:₪|\$|€|£)\s*([\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`([\d,]+(?:\.\d{1,2})?)\s*(?:₪|ils|nis|ILS|NIS)`),
		regexp.MustCompile(`בסך\s*(?:₪)?\s*([\d,]+(?:\.\d{1,2})?)`),
	},
	merchant: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s+on\s+\d|\s*\.?\s*$)`),
		regexp.MustCompile(`(?i)\bto\s+(.+?)(?:\s+on\s+\d|\s*\.?\s*$)`),
		regexp.MustCompile(`ב-\s*(.+?)(?:\s+בתאריך|\s*\.?\s*$)`),
	},
	date: []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})(?:[./](\d{2,4}))?\b`),
	},
	currency: []*regexp.Regexp{
		regexp.MustCompile(`(₪|\$|€|£)`),
		regexp.MustCompile(`\b(ILS|NIS|USD|EUR|GBP|CHF)\b`),
	},
}

// currencySymbols maps explicit symbols and codes found in notification
// text to ISO-like currency codes.
var currencySymbols = map[string]string{
	"₪":   "ILS",
	"$":   "USD",
	"€":   "EUR",
	"£":   "GBP",
	"NIS": "ILS",
	"ILS": "ILS",
	"USD": "USD",
	"EUR": "EUR",
	"GBP": "GBP",
	"CHF": "CHF",
}

// detectProvider returns the rule set of the first issuer whose detection
// phrase matches the text, or generic-only rules for unknown issuers.
func detectProvider(text string) (models.Provider, fieldPatterns) {
	for _, rules := range providerTable {
		for _, phrase := range rules.phrases {
			if phrase.MatchString(text) {
				return rules.provider, rules.patterns
			}
		}
	}
	return models.ProviderUnknown, fieldPatterns{}
}
