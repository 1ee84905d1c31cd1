// Package draft implements the resume data store: pure transitions over a ResumeDraft
// and a single-owner Store that applies them.
package draft

import "fmt"

// NotFoundError indicates an experience entry id is not present in the draft.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("experience entry not found: %s", e.ID)
}

// InputError indicates an action carried invalid input. The draft is left unchanged.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}
