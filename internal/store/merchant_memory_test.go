package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchantMemoryUpsertAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	m, err := NewYAMLMerchantMemory(path)
	require.NoError(t, err)

	require.NoError(t, m.Upsert(testHousehold, "cafe gold", "Coffee"))

	t.Run("exact lookup", func(t *testing.T) {
		category, found, err := m.Lookup(testHousehold, "cafe gold")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Coffee", category)
	})

	t.Run("substring lookup in both directions", func(t *testing.T) {
		category, found, err := m.Lookup(testHousehold, "cafe gold tlv")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Coffee", category)

		category, found, err = m.Lookup(testHousehold, "gold")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Coffee", category)
	})

	t.Run("unknown merchant", func(t *testing.T) {
		_, found, err := m.Lookup(testHousehold, "superpharm")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("other household sees nothing", func(t *testing.T) {
		_, found, err := m.Lookup("hh-2", "cafe gold")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty merchant", func(t *testing.T) {
		_, found, err := m.Lookup(testHousehold, "  ")
		require.NoError(t, err)
		assert.False(t, found)

		assert.Error(t, m.Upsert(testHousehold, "  ", "Coffee"))
	})
}

func TestMerchantMemoryConfidenceAndCorrections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	m, err := NewYAMLMerchantMemory(path)
	require.NoError(t, err)

	require.NoError(t, m.Upsert(testHousehold, "wolt", "Restaurants"))
	require.NoError(t, m.Upsert(testHousehold, "wolt", "Restaurants"))

	entry := m.entries[testHousehold]["wolt"]
	assert.Equal(t, 2, entry.Confidence)
	assert.Equal(t, 0, entry.Corrections)

	// A changed category is a correction and resets the counter.
	require.NoError(t, m.Upsert(testHousehold, "wolt", "Groceries"))
	assert.Equal(t, "Groceries", entry.Category)
	assert.Equal(t, 1, entry.Confidence)
	assert.Equal(t, 1, entry.Corrections)
}

func TestMerchantMemorySaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "memory.yaml")

	m, err := NewYAMLMerchantMemory(path)
	require.NoError(t, err)
	require.NoError(t, m.Upsert(testHousehold, "spotify", "Subscriptions"))
	require.NoError(t, m.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Merchant to category mappings")

	reloaded, err := NewYAMLMerchantMemory(path)
	require.NoError(t, err)
	category, found, err := reloaded.Lookup(testHousehold, "spotify")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Subscriptions", category)
}

func TestMerchantMemorySaveCleanIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")

	m, err := NewYAMLMerchantMemory(path)
	require.NoError(t, err)
	require.NoError(t, m.Save())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clean store must not touch disk")
}

func TestMerchantMemoryRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("households: [not: a: map"), 0600))

	_, err := NewYAMLMerchantMemory(path)
	assert.Error(t, err)
}
