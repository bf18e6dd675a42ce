package match

import (
	"strings"
)

// equivalentServices lists known pairs of names that describe the same
// counterparty even though neither contains the other: payment-processor
// pass-through labels, issuer shorthand and the like. Both columns are
// compared after normalization. Extending coverage is a table change.
var equivalentServices = [][2]string{
	{"paypal", "pp*"},
	{"amzn", "amazon"},
	{"amzn mktp", "amazon"},
	{"sq *", "square"},
	{"goog", "google"},
	{"apple.com/bill", "apple"},
	{"msft", "microsoft"},
	{"fb pay", "facebook"},
	{"wlt", "wolt"},
	{"cal online", "visa cal"},
}

// knownEquivalent reports whether the two normalized names hit one of the
// equivalent-service pairs, in either direction.
func knownEquivalent(a, b string) bool {
	for _, pair := range equivalentServices {
		if (strings.Contains(a, pair[0]) && strings.Contains(b, pair[1])) ||
			(strings.Contains(a, pair[1]) && strings.Contains(b, pair[0])) {
			return true
		}
	}
	return false
}
