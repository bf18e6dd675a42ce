// Package txerrors defines the error taxonomy of the engine. Rejected input
// and absent matches are reported as values, not errors; the types here cover
// the failures that must propagate or be logged.
package txerrors

import (
	"errors"
	"fmt"
)

// ErrNoCandidate is returned by matching when zero acceptable candidates
// exist in the pool. It is the expected common case and callers must treat
// it differently from a storage failure.
var ErrNoCandidate = errors.New("no match candidate")

// ErrAlreadyLinked is returned when a merge write loses the race because the
// candidate was linked by a concurrent operation after the pool was read.
var ErrAlreadyLinked = errors.New("transaction already linked")

// ExtractionError reports a field that could not be parsed out of a
// notification. Extraction errors are logged and degrade to a missing field,
// they never abort an ingestion.
type ExtractionError struct {
	Provider string
	Field    string
	Value    string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: failed to extract %s from '%s': %v",
		e.Provider, e.Field, e.Value, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// AIServiceError reports a failure of the external text-understanding
// service (timeout, transport error, malformed response). Recovered locally
// by falling back to the pattern-only result.
type AIServiceError struct {
	Model string
	Err   error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("ai service (%s): %v", e.Model, e.Err)
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}

// StorageError reports a failed read or write on a collaborator store.
// Fatal to the current operation; always surfaced to the caller.
type StorageError struct {
	Op          string
	HouseholdID string
	Err         error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for household %s: %v",
		e.Op, e.HouseholdID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
