package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"finsignal/txengine/internal/models"

	"gopkg.in/yaml.v3"
)

// memoryFileHeader documents the on-disk format for anyone editing it by
// hand.
const memoryFileHeader = `# Merchant to category mappings, per household.
# Entries are created only when a user confirms a category with an explicit
# "remember" instruction. The categorization path reads them as a prior.

`

// merchantMemoryFile is the YAML document layout.
type merchantMemoryFile struct {
	Households map[string][]models.MerchantMemoryEntry `yaml:"households"`
}

// YAMLMerchantMemory is a MerchantMemory backed by a YAML file. Writes are
// tracked with a dirty flag and flushed by Save, so repeated upserts during
// one run do not rewrite the file each time.
type YAMLMerchantMemory struct {
	path string

	mu      sync.RWMutex
	entries map[string]map[string]*models.MerchantMemoryEntry // householdID -> merchant -> entry
	isDirty bool
}

// NewYAMLMerchantMemory loads the memory file at path, creating an empty
// store when the file does not exist yet.
func NewYAMLMerchantMemory(path string) (*YAMLMerchantMemory, error) {
	m := &YAMLMerchantMemory{
		path:    path,
		entries: make(map[string]map[string]*models.MerchantMemoryEntry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("could not read merchant memory file: %w", err)
	}

	var file merchantMemoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse merchant memory file: %w", err)
	}

	for householdID, entries := range file.Households {
		byMerchant := make(map[string]*models.MerchantMemoryEntry, len(entries))
		for i := range entries {
			entry := entries[i]
			byMerchant[strings.ToLower(entry.Merchant)] = &entry
		}
		m.entries[householdID] = byMerchant
	}
	return m, nil
}

// Upsert records a confirmed merchant-to-category mapping. A repeated
// confirmation bumps the confidence counter; a changed category counts as a
// correction and resets it.
func (m *YAMLMerchantMemory) Upsert(householdID, normalizedMerchant, category string) error {
	merchant := strings.ToLower(strings.TrimSpace(normalizedMerchant))
	if merchant == "" {
		return fmt.Errorf("empty merchant name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	household, ok := m.entries[householdID]
	if !ok {
		household = make(map[string]*models.MerchantMemoryEntry)
		m.entries[householdID] = household
	}

	now := time.Now().UTC()
	if entry, exists := household[merchant]; exists {
		if entry.Category == category {
			entry.Confidence++
		} else {
			entry.Category = category
			entry.Corrections++
			entry.Confidence = 1
		}
		entry.LastUsedAt = now
	} else {
		household[merchant] = &models.MerchantMemoryEntry{
			Merchant:   merchant,
			Category:   category,
			Confidence: 1,
			LastUsedAt: now,
		}
	}

	m.isDirty = true
	return nil
}

// Lookup returns the remembered category for a merchant. Exact lookup
// first; when it misses, a substring scan in both directions serves as the
// secondary path.
func (m *YAMLMerchantMemory) Lookup(householdID, normalizedMerchant string) (string, bool, error) {
	merchant := strings.ToLower(strings.TrimSpace(normalizedMerchant))
	if merchant == "" {
		return "", false, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	household, ok := m.entries[householdID]
	if !ok {
		return "", false, nil
	}

	if entry, exists := household[merchant]; exists {
		return entry.Category, true, nil
	}

	for name, entry := range household {
		if strings.Contains(merchant, name) || strings.Contains(name, merchant) {
			return entry.Category, true, nil
		}
	}
	return "", false, nil
}

// Save flushes modified entries to disk. A clean store is a no-op.
func (m *YAMLMerchantMemory) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isDirty {
		return nil
	}

	file := merchantMemoryFile{
		Households: make(map[string][]models.MerchantMemoryEntry, len(m.entries)),
	}
	for householdID, byMerchant := range m.entries {
		entries := make([]models.MerchantMemoryEntry, 0, len(byMerchant))
		for _, entry := range byMerchant {
			entries = append(entries, *entry)
		}
		file.Households[householdID] = entries
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("could not marshal merchant memory: %w", err)
	}

	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("could not create memory directory: %w", err)
		}
	}
	if err := os.WriteFile(m.path, append([]byte(memoryFileHeader), data...), 0600); err != nil {
		return fmt.Errorf("could not write merchant memory file: %w", err)
	}

	m.isDirty = false
	return nil
}
