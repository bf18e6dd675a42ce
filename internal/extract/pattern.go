package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/normalize"

	"github.com/shopspring/decimal"
)

// PatternExtractor pulls structured fields from a raw notification using
// the provider rule tables. Deterministic, no external calls.
type PatternExtractor struct{}

// NewPatternExtractor creates a PatternExtractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract runs the provider-specific rules and the generic fallbacks over
// the text and returns the fields it found. Confidence is computed from
// field presence; missing fields are left zero, never guessed.
func (p *PatternExtractor) Extract(text string, receivedAt time.Time) models.ExtractedFields {
	provider, patterns := detectProvider(text)

	fields := models.ExtractedFields{Provider: provider}
	fields.CardEnding = firstMatch(text, patterns.card, genericPatterns.card)
	fields.MerchantName = normalize.CleanRaw(firstMatch(text, patterns.merchant, genericPatterns.merchant))

	if raw := firstMatch(text, patterns.amount, genericPatterns.amount); raw != "" {
		if amount, ok := parseAmount(raw); ok {
			fields.Amount = &amount
		}
	}

	if symbol := firstMatch(text, patterns.currency, genericPatterns.currency); symbol != "" {
		fields.Currency = currencySymbols[strings.ToUpper(symbol)]
		if fields.Currency == "" {
			fields.Currency = currencySymbols[symbol]
		}
	}

	fields.TransactionDate = extractDate(text, patterns.date, receivedAt)
	fields.Confidence = fields.Score()
	return fields
}

// firstMatch tries the provider patterns first, then the generic fallbacks,
// returning the first captured group found.
func firstMatch(text string, providerPatterns, generic []*regexp.Regexp) string {
	for _, re := range providerPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	for _, re := range generic {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// parseAmount strips thousands separators and parses the magnitude.
// Non-numeric results are rejected.
func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount.Abs(), true
}

// extractDate parses a day/month (optionally /year) pair out of the text.
// A dotted amount like "50.25" has the same shape as a day/month token, so
// every occurrence is tried and the first one that validates wins. When no
// occurrence validates the result is nil and the caller falls back to the
// ingestion-time date.
func extractDate(text string, providerPatterns []*regexp.Regexp, receivedAt time.Time) *time.Time {
	patterns := providerPatterns
	if len(patterns) == 0 {
		patterns = genericPatterns.date
	}

	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 3 {
				continue
			}
			if date, ok := resolveDate(m, receivedAt); ok {
				return &date
			}
		}
	}
	return nil
}

// resolveDate validates one day/month(/year) capture. When the year is
// absent it is inferred from the arrival time: a month later than the
// current month belongs to the previous year, which handles statements
// arriving after period end.
func resolveDate(m []string, receivedAt time.Time) (time.Time, bool) {
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	year := receivedAt.Year()
	if len(m) > 3 && m[3] != "" {
		year, err = strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
		if year < 100 {
			year += 2000
		}
	} else if time.Month(month) > receivedAt.Month() {
		year--
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		// Rejects impossible combinations like February 30.
		return time.Time{}, false
	}
	return date, true
}
