// Package normalize canonicalizes free-text merchant and counterparty names
// so that equivalent names compare equal across ingestion channels.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Trailing clauses appended by notification issuers that carry no
	// merchant information.
	boilerplateSuffixes = []string{
		"for more information",
		"for more details",
		"to view details",
		"לפרטים נוספים",
	}

	// Words too generic to establish a merchant correlation on their own.
	stopwords = map[string]struct{}{
		"the": {}, "and": {}, "ltd": {}, "inc": {}, "llc": {},
		"pay": {}, "card": {}, "com": {}, "www": {},
	}
)

// Merchant canonicalizes a free-text merchant name: trims whitespace and
// trailing punctuation, folds case, strips issuer boilerplate and collapses
// internal whitespace.
func Merchant(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	for _, suffix := range boilerplateSuffixes {
		if idx := strings.Index(lower, suffix); idx >= 0 {
			s = s[:idx]
			lower = lower[:idx]
		}
	}

	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.ToLower(strings.TrimSpace(s))
}

// CleanRaw trims a raw extracted merchant string without case folding.
// Used to keep the original casing for display while still removing
// trailing punctuation and boilerplate clauses.
func CleanRaw(name string) string {
	s := strings.TrimSpace(name)
	lower := strings.ToLower(s)
	for _, suffix := range boilerplateSuffixes {
		if idx := strings.Index(lower, suffix); idx >= 0 {
			s = s[:idx]
			lower = lower[:idx]
		}
	}
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// SignificantWords splits a normalized name into the words that are
// meaningful for correlation: length at least 3 and not a stopword.
func SignificantWords(normalized string) []string {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var words []string
	for _, w := range fields {
		if len([]rune(w)) < 3 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		words = append(words, w)
	}
	return words
}

// SharesSignificantWord reports whether two normalized names have at least
// one significant word in common.
func SharesSignificantWord(a, b string) bool {
	wordsA := SignificantWords(a)
	if len(wordsA) == 0 {
		return false
	}
	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	for _, w := range SignificantWords(b) {
		if _, ok := setA[w]; ok {
			return true
		}
	}
	return false
}

// scriptRanges lists the scripts the engine distinguishes when deciding
// whether a merchant name carries characters from a new script.
var scriptRanges = map[string]*unicode.RangeTable{
	"latin":    unicode.Latin,
	"hebrew":   unicode.Hebrew,
	"arabic":   unicode.Arabic,
	"cyrillic": unicode.Cyrillic,
	"greek":    unicode.Greek,
	"han":      unicode.Han,
}

// Scripts returns the set of scripts the letters of s belong to.
func Scripts(s string) map[string]struct{} {
	scripts := make(map[string]struct{})
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		for name, table := range scriptRanges {
			if unicode.Is(table, r) {
				scripts[name] = struct{}{}
				break
			}
		}
	}
	return scripts
}

// HasNewScript reports whether candidate contains letters from a script
// absent from previous. A new script signals a more specific, localized
// merchant name.
func HasNewScript(candidate, previous string) bool {
	prev := Scripts(previous)
	for script := range Scripts(candidate) {
		if _, ok := prev[script]; !ok {
			return true
		}
	}
	return false
}
