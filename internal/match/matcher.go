// Package match implements the cross-source fuzzy matcher that links
// receipts and screenshot-derived records to canonical transactions.
package match

import (
	"strings"
	"time"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/normalize"

	"github.com/shopspring/decimal"
)

// Options hold the matching windows and amount tolerances. The
// reconciliation window is wider than the receipt window because P2P to
// credit-card settlement lags more than email receipts do.
type Options struct {
	ReconcileWindowDays int
	ReceiptWindowDays   int
	// CorrelatedTolerance is the relative amount tolerance when the
	// merchant correlation test passed (currency conversion and rounding
	// noise).
	CorrelatedTolerance decimal.Decimal
	// StrictTolerance applies when merchants do not correlate; amount-only
	// matches must be near-exact.
	StrictTolerance decimal.Decimal
}

// DefaultOptions returns the standard matching parameters.
func DefaultOptions() Options {
	return Options{
		ReconcileWindowDays: 3,
		ReceiptWindowDays:   1,
		CorrelatedTolerance: decimal.NewFromFloat(0.05),
		StrictTolerance:     decimal.NewFromFloat(0.01),
	}
}

// Matcher scores candidate pairs. Pure in-memory logic; the caller supplies
// the pool and persists whatever link results.
type Matcher struct {
	opts   Options
	logger logging.Logger
}

// NewMatcher creates a Matcher with the given options.
func NewMatcher(opts Options, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.ReconcileWindowDays == 0 && opts.ReceiptWindowDays == 0 {
		opts = DefaultOptions()
	}
	return &Matcher{opts: opts, logger: logger}
}

// Options returns the matcher's configured windows and tolerances.
func (m *Matcher) Options() Options {
	return m.opts
}

// MerchantsMatch is the symmetric merchant correlation test: substring
// containment in either direction after normalization, a known
// equivalent-service pair, or a shared significant word.
func MerchantsMatch(a, b string) bool {
	na := normalize.Merchant(a)
	nb := normalize.Merchant(b)
	if na == "" || nb == "" {
		return false
	}
	if containsEitherWay(na, nb) {
		return true
	}
	if knownEquivalent(na, nb) {
		return true
	}
	return normalize.SharesSignificantWord(na, nb)
}

func containsEitherWay(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// AmountsWithinTolerance reports whether two amounts agree within the
// relative tolerance appropriate to the correlation outcome. The tolerance
// is merchant-aware: correlated pairs absorb conversion and rounding noise,
// uncorrelated pairs must be near-exact.
func (m *Matcher) AmountsWithinTolerance(a, b decimal.Decimal, merchantCorrelated bool) bool {
	tolerance := m.opts.StrictTolerance
	if merchantCorrelated {
		tolerance = m.opts.CorrelatedTolerance
	}

	a = a.Abs()
	b = b.Abs()
	base := a
	if b.GreaterThan(base) {
		base = b
	}
	if base.IsZero() {
		return a.Equal(b)
	}

	diff := a.Sub(b).Abs()
	return diff.Div(base).LessThanOrEqual(tolerance)
}

// WithinWindow reports whether two dates are at most windowDays apart.
func WithinWindow(a, b time.Time, windowDays int) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(windowDays)*24*time.Hour
}

// FindMatch scores every pool transaction within the window against the
// candidate and selects the best acceptable match, or none. A
// merchant-correlated match always outranks an amount-only match; ties
// among correlated candidates break on the smallest absolute amount
// difference. Absence of a match is the expected common case.
func (m *Matcher) FindMatch(candidate *models.CanonicalTransaction, pool []*models.CanonicalTransaction, windowDays int) (models.MatchCandidate, bool) {
	var best *models.MatchCandidate

	for _, tx := range pool {
		if tx.ID == candidate.ID {
			continue
		}
		if tx.IsLinked() {
			continue
		}
		if !WithinWindow(candidate.Date, tx.Date, windowDays) {
			continue
		}
		if tx.Amount.Currency != candidate.Amount.Currency {
			continue
		}

		correlated := MerchantsMatch(candidate.Merchant, tx.Merchant)
		if !m.AmountsWithinTolerance(candidate.Amount.Amount, tx.Amount.Amount, correlated) {
			continue
		}

		reason := models.ReasonAmountOnly
		if correlated {
			reason = models.ReasonMerchantCorrelated
		}
		scored := models.MatchCandidate{
			Transaction: tx,
			Reason:      reason,
			AmountDiff:  candidate.Amount.Amount.Abs().Sub(tx.Amount.Amount.Abs()).Abs(),
		}

		if best == nil || outranks(scored, *best) {
			selected := scored
			best = &selected
		}
	}

	if best == nil {
		return models.MatchCandidate{}, false
	}

	m.logger.Debug("match candidate selected",
		logging.Field{Key: logging.FieldCandidate, Value: best.Transaction.ID},
		logging.Field{Key: logging.FieldReason, Value: best.Reason})
	return *best, true
}

// outranks reports whether a should replace b as the best candidate.
func outranks(a, b models.MatchCandidate) bool {
	if a.Correlated() != b.Correlated() {
		return a.Correlated()
	}
	return a.AmountDiff.LessThan(b.AmountDiff)
}
