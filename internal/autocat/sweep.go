package autocat

import (
	"context"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/store"
)

// Sweeper drains the household's uncategorized backlog in bounded batches.
type Sweeper struct {
	store       store.TransactionStore
	categorizer *Categorizer
	batchSize   int
	logger      logging.Logger
}

// NewSweeper creates a Sweeper with the given batch size.
func NewSweeper(txStore store.TransactionStore, categorizer *Categorizer, batchSize int, logger logging.Logger) *Sweeper {
	if batchSize <= 0 {
		batchSize = 50
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Sweeper{
		store:       txStore,
		categorizer: categorizer,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// Run drains the household's uncategorized backlog. Each pass lists the
// full backlog and works through it in batches of batchSize, so termination
// never depends on listing order: a pass has seen every pending record
// before zero progress ends the loop. Re-invoking it is always safe;
// records without a usable prior are left for human review rather than
// retried forever.
func (s *Sweeper) Run(ctx context.Context, householdID string) (int, error) {
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		pending, err := s.store.ListUncategorized(ctx, householdID, 0)
		if err != nil {
			return total, err
		}
		if len(pending) == 0 {
			break
		}

		categorized := 0
		for start := 0; start < len(pending); start += s.batchSize {
			if err := ctx.Err(); err != nil {
				return total + categorized, err
			}
			end := start + s.batchSize
			if end > len(pending) {
				end = len(pending)
			}
			for _, tx := range pending[start:end] {
				category, found, err := s.categorizer.Categorize(householdID, tx.Merchant)
				if err != nil {
					return total + categorized, err
				}
				if !found {
					continue
				}
				if err := s.store.UpdateCategory(ctx, householdID, tx.ID, category, models.CategorySourceAuto); err != nil {
					return total + categorized, err
				}
				categorized++
			}
		}

		total += categorized
		// The pass saw every pending record, so zero progress means the
		// rest have no usable prior.
		if categorized == 0 {
			break
		}
	}

	s.logger.Info("categorization sweep finished",
		logging.Field{Key: logging.FieldHousehold, Value: householdID},
		logging.Field{Key: logging.FieldCount, Value: total})
	return total, nil
}
