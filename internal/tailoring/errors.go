// Package tailoring is the boundary to the generative-AI collaborator that rewrites a
// resume draft for a target job. Its only output is a validated AiOverlay.
package tailoring

import "fmt"

// APICallError represents a failed call to the AI collaborator
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// FormatError means the collaborator answered, but not with a usable overlay.
type FormatError struct {
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response not in expected format: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("response not in expected format: %s", e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// InputError means the request cannot be tailored as given.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid tailoring request: %s", e.Message)
}
