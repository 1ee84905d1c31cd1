// Package session keeps one workspace per authenticated owner: the owner's draft
// store, interview conversation and single-flight guards for AI operations.
package session

import (
	"errors"
	"fmt"
)

// ErrStaleSubmission is returned when a tailoring response arrives after a newer
// submission, a reset or an import. The response is discarded.
var ErrStaleSubmission = errors.New("submission superseded; response discarded")

// BusyError is returned when an operation of the same kind is already in flight.
type BusyError struct {
	Op string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s already in progress", e.Op)
}

// PersistError wraps a failure to load or save a draft.
type PersistError struct {
	Message string
	Cause   error
}

func (e *PersistError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("persistence error: %s", e.Message)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}
