// Package reconcile links records from different ingestion channels that
// describe the same real-world transaction and flags duplicates.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/match"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/store"
	"finsignal/txengine/internal/txerrors"
)

// Reconciler pairs P2P/app transactions against credit-card transactions of
// the same household and applies merge instructions.
type Reconciler struct {
	store   store.TransactionStore
	matcher *match.Matcher
	logger  logging.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(txStore store.TransactionStore, matcher *match.Matcher, logger logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Reconciler{
		store:   txStore,
		matcher: matcher,
		logger:  logger,
	}
}

// Reconcile looks for the candidate's counterpart on the opposite channel
// and merges the pair when one is found. Returns the match that was
// applied, txerrors.ErrNoCandidate when the pool holds no acceptable
// counterpart (the expected common case), or a storage error when a
// read/write failed.
//
// The merge write is conditioned on the counterpart still being unlinked; a
// lost race against a concurrent merge surfaces as ErrNoCandidate, never as
// a half-applied pair.
func (r *Reconciler) Reconcile(ctx context.Context, candidate *models.CanonicalTransaction) (models.MatchCandidate, error) {
	if candidate.IsLinked() {
		return models.MatchCandidate{}, txerrors.ErrNoCandidate
	}

	opposite := models.ChannelCard
	if candidate.Channel == models.ChannelCard {
		opposite = models.ChannelApp
	}

	windowDays := r.matcher.Options().ReconcileWindowDays
	from := candidate.Date.AddDate(0, 0, -windowDays)
	to := candidate.Date.AddDate(0, 0, windowDays)

	pool, err := r.store.FindByWindow(ctx, candidate.HouseholdID, from, to, opposite)
	if err != nil {
		return models.MatchCandidate{}, fmt.Errorf("reconcile pool lookup: %w", err)
	}

	matched, found := r.matcher.FindMatch(candidate, pool, windowDays)
	if !found {
		return models.MatchCandidate{}, txerrors.ErrNoCandidate
	}

	canonicalID, duplicateID := r.mergeDirection(candidate, matched.Transaction)
	if err := r.store.LinkPair(ctx, candidate.HouseholdID, canonicalID, duplicateID); err != nil {
		if errors.Is(err, txerrors.ErrAlreadyLinked) {
			r.logger.Debug("merge lost race, no match performed",
				logging.Field{Key: logging.FieldTransaction, Value: candidate.ID},
				logging.Field{Key: logging.FieldCandidate, Value: matched.Transaction.ID})
			return models.MatchCandidate{}, txerrors.ErrNoCandidate
		}
		return models.MatchCandidate{}, fmt.Errorf("reconcile merge write: %w", err)
	}

	r.logger.Info("duplicate pair merged",
		logging.Field{Key: logging.FieldHousehold, Value: candidate.HouseholdID},
		logging.Field{Key: logging.FieldTransaction, Value: canonicalID},
		logging.Field{Key: logging.FieldCandidate, Value: duplicateID},
		logging.Field{Key: logging.FieldReason, Value: matched.Reason})
	return matched, nil
}

// mergeDirection decides which side of a matched pair stays canonical.
// The card-channel record is the settled one, so the app-channel record is
// flagged as its duplicate.
func (r *Reconciler) mergeDirection(a, b *models.CanonicalTransaction) (canonicalID, duplicateID string) {
	if a.Channel == models.ChannelCard {
		return a.ID, b.ID
	}
	return b.ID, a.ID
}

// LinkReceipt matches a receipt-derived record against the household's card
// transactions inside the tighter receipt window and attaches the receipt
// reference to the winner.
func (r *Reconciler) LinkReceipt(ctx context.Context, receipt *models.CanonicalTransaction) (models.MatchCandidate, error) {
	windowDays := r.matcher.Options().ReceiptWindowDays
	from := receipt.Date.AddDate(0, 0, -windowDays)
	to := receipt.Date.AddDate(0, 0, windowDays)

	pool, err := r.store.FindByWindow(ctx, receipt.HouseholdID, from, to, models.ChannelCard)
	if err != nil {
		return models.MatchCandidate{}, fmt.Errorf("receipt pool lookup: %w", err)
	}

	matched, found := r.matcher.FindMatch(receipt, pool, windowDays)
	if !found {
		return models.MatchCandidate{}, txerrors.ErrNoCandidate
	}

	if err := r.store.LinkReceipt(ctx, receipt.HouseholdID, matched.Transaction.ID, receipt.ID); err != nil {
		if errors.Is(err, txerrors.ErrAlreadyLinked) {
			return models.MatchCandidate{}, txerrors.ErrNoCandidate
		}
		return models.MatchCandidate{}, fmt.Errorf("receipt link write: %w", err)
	}
	return matched, nil
}

// ReconcileWindow returns the [from, to] range the reconciler searches for
// a candidate dated at date.
func (r *Reconciler) ReconcileWindow(date time.Time) (time.Time, time.Time) {
	days := r.matcher.Options().ReconcileWindowDays
	return date.AddDate(0, 0, -days), date.AddDate(0, 0, days)
}
