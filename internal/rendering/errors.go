// Package rendering lays out a render-ready resume as a visual document.
// One engine serves every template; templates differ only by their Style descriptor.
package rendering

import "fmt"

// TemplateNotFoundError is returned when a template id is not in the registry.
type TemplateNotFoundError struct {
	ID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %q", e.ID)
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// StyleError describes an invalid style descriptor found while building a registry.
type StyleError struct {
	ID      string
	Message string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("invalid style %q: %s", e.ID, e.Message)
}
