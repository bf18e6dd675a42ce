package autocat

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHousehold = "hh-1"

func newTestMemory(t *testing.T) *store.YAMLMerchantMemory {
	t.Helper()
	m, err := store.NewYAMLMerchantMemory(filepath.Join(t.TempDir(), "memory.yaml"))
	require.NoError(t, err)
	return m
}

func insertTx(t *testing.T, s store.TransactionStore, merchant string) *models.CanonicalTransaction {
	t.Helper()
	tx := &models.CanonicalTransaction{
		HouseholdID: testHousehold,
		Merchant:    merchant,
		Amount:      models.Money{Amount: decimal.NewFromInt(10), Currency: "ILS"},
		Date:        time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
		Channel:     models.ChannelCard,
		Status:      models.StatusProvisional,
	}
	require.NoError(t, s.Insert(context.Background(), tx))
	return tx
}

func TestCategorize(t *testing.T) {
	memory := newTestMemory(t)
	c := NewCategorizer(memory, logging.NewMockLogger())

	t.Run("memory prior wins over keyword table", func(t *testing.T) {
		require.NoError(t, memory.Upsert(testHousehold, "wolt", "Eating Out"))

		category, found, err := c.Categorize(testHousehold, "WOLT Tel Aviv")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Eating Out", category)
	})

	t.Run("keyword fallback", func(t *testing.T) {
		category, found, err := c.Categorize(testHousehold, "Spotify Premium")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Subscriptions", category)
	})

	t.Run("no path produces a category", func(t *testing.T) {
		_, found, err := c.Categorize(testHousehold, "Totally Unknown Shop")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty merchant", func(t *testing.T) {
		_, found, err := c.Categorize(testHousehold, "  ")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRemember(t *testing.T) {
	memory := newTestMemory(t)
	c := NewCategorizer(memory, logging.NewMockLogger())

	require.NoError(t, c.Remember(testHousehold, "Cafe Gold TLV", "Coffee"))

	category, found, err := c.Categorize(testHousehold, "cafe gold tlv")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Coffee", category)

	assert.Error(t, c.Remember(testHousehold, "", "Coffee"))
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("creation trigger categorizes and sets auto provenance", func(t *testing.T) {
		s := store.NewMemoryTransactionStore()
		c := NewCategorizer(newTestMemory(t), logging.NewMockLogger())
		tx := insertTx(t, s, "Netflix.com")

		decision, err := c.Apply(ctx, s, tx, models.TriggerSMSReceived, "")
		require.NoError(t, err)
		assert.True(t, decision.ShouldRun)

		got, err := s.Get(ctx, testHousehold, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, "Subscriptions", got.Category)
		assert.Equal(t, models.CategorySourceAuto, got.CategorySource)
	})

	t.Run("blocked trigger leaves the record untouched", func(t *testing.T) {
		s := store.NewMemoryTransactionStore()
		c := NewCategorizer(newTestMemory(t), logging.NewMockLogger())
		tx := insertTx(t, s, "Netflix.com")
		tx.Category = "My Pick"
		tx.CategorySource = models.CategorySourceUserManual

		decision, err := c.Apply(ctx, s, tx, models.TriggerMerchantEnriched, "Netflix International BV")
		require.NoError(t, err)
		assert.False(t, decision.ShouldRun)
		assert.Equal(t, ReasonUserCategorized, decision.Reason)

		got, err := s.Get(ctx, testHousehold, tx.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Category, "store must not be written on a blocked trigger")
	})

	t.Run("enrichment categorizes on the new merchant info", func(t *testing.T) {
		s := store.NewMemoryTransactionStore()
		c := NewCategorizer(newTestMemory(t), logging.NewMockLogger())
		tx := insertTx(t, s, "unreadable ocr blob")

		decision, err := c.Apply(ctx, s, tx, models.TriggerReceiptLinked, "Shufersal Deal")
		require.NoError(t, err)
		assert.True(t, decision.ShouldRun)
		assert.Equal(t, ReasonFirstMerchantInfo, decision.Reason)
		assert.Equal(t, "Groceries", tx.Category)
	})

	t.Run("permitted run with no categorization path is not an error", func(t *testing.T) {
		s := store.NewMemoryTransactionStore()
		c := NewCategorizer(newTestMemory(t), logging.NewMockLogger())
		tx := insertTx(t, s, "Totally Unknown Shop")

		decision, err := c.Apply(ctx, s, tx, models.TriggerSMSReceived, "")
		require.NoError(t, err)
		assert.True(t, decision.ShouldRun)
		assert.Empty(t, tx.Category)
	})
}
