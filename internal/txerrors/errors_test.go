package txerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionError(t *testing.T) {
	cause := errors.New("no digits found")
	err := &ExtractionError{Provider: "visa_cal", Field: "amount", Value: "abc", Err: cause}

	assert.Equal(t, "visa_cal: failed to extract amount from 'abc': no digits found", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAIServiceError(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := &AIServiceError{Model: "gemini-2.0-flash", Err: cause}

	assert.Contains(t, err.Error(), "gemini-2.0-flash")
	assert.ErrorIs(t, err, cause)
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk gone")
	err := &StorageError{Op: "insert", HouseholdID: "hh-1", Err: cause}

	assert.Equal(t, "storage insert failed for household hh-1: disk gone", err.Error())
	assert.ErrorIs(t, err, cause)

	var storageErr *StorageError
	wrapped := fmt.Errorf("outer context: %w", err)
	require.ErrorAs(t, wrapped, &storageErr)
	assert.Equal(t, "insert", storageErr.Op)
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrNoCandidate, ErrAlreadyLinked)
	assert.NotErrorIs(t, ErrAlreadyLinked, ErrNoCandidate)
}
