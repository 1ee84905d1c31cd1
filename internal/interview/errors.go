// Package interview runs the mock-interview chat loop: an ordered turn history, a
// fragment accumulator for streamed replies, and a responder that resends the whole
// history to the AI collaborator on every turn.
package interview

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleResponse is returned when a fragment or completion carries a generation
	// older than the conversation's current one. The caller drops it.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrStreamAbandoned is returned by the responder when the conversation moved on
	// while a reply was still streaming.
	ErrStreamAbandoned = errors.New("response abandoned")

	// ErrEmptyResponse means the collaborator closed the stream without any text.
	ErrEmptyResponse = errors.New("empty response from interviewer")
)

// StateError is returned when an operation is not allowed in the current state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

// InputError reports an unusable message or persona.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid interview input: %s", e.Message)
}

// PersonaNotFoundError is returned for an unknown persona id.
type PersonaNotFoundError struct {
	ID string
}

func (e *PersonaNotFoundError) Error() string {
	return fmt.Sprintf("persona not found: %q", e.ID)
}

// CollaboratorError wraps a failure of the remote AI collaborator. The conversation
// already holds the matching error turn when this is returned.
type CollaboratorError struct {
	Message string
	Cause   error
}

func (e *CollaboratorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("interviewer error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("interviewer error: %s", e.Message)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}
