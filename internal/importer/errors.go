// Package importer turns an uploaded resume document into a draft pre-fill: text is
// extracted locally, then structured by the AI collaborator.
package importer

import "fmt"

// UnsupportedTypeError is returned for any declared MIME type other than PDF or DOCX.
type UnsupportedTypeError struct {
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.MIME)
}

// InputError means the upload itself is unusable (empty or too large).
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid upload: %s", e.Message)
}

// ExtractionError means no text could be read from the document.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not extract text: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("could not extract text: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ParseError means the collaborator's answer could not be used as a pre-fill.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parser response not structured: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parser response not structured: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
