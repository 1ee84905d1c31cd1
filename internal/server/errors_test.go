package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/interview"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/tailoring"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "templateId", Message: "is required"}
	assert.Equal(t, "validation error: templateId - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	err = &ErrValidation{Message: "invalid JSON body"}
	assert.Equal(t, "validation error: invalid JSON body", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &ErrValidation{Field: "value", Message: "too long"}, http.StatusBadRequest},
		{"draft input", &draft.InputError{Field: "field", Message: "unknown"}, http.StatusBadRequest},
		{"import input", &importer.InputError{Message: "empty file"}, http.StatusBadRequest},
		{"interview input", &interview.InputError{Message: "empty message"}, http.StatusBadRequest},
		{"tailoring input", &tailoring.InputError{Message: "no experience"}, http.StatusBadRequest},
		{"unsupported upload", &importer.UnsupportedTypeError{MIME: "text/plain"}, http.StatusUnsupportedMediaType},
		{"oversized body", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unknown entry", &draft.NotFoundError{ID: "42"}, http.StatusNotFound},
		{"unknown template", &rendering.TemplateNotFoundError{ID: "comic"}, http.StatusNotFound},
		{"unknown persona", &interview.PersonaNotFoundError{ID: "pirate"}, http.StatusNotFound},
		{"busy", &session.BusyError{Op: "tailoring"}, http.StatusConflict},
		{"awaiting reply", &interview.StateError{Op: "submit", State: interview.Accumulating}, http.StatusConflict},
		{"stale submission", session.ErrStaleSubmission, http.StatusConflict},
		{"no overlay", reconcile.ErrNoOverlay, http.StatusConflict},
		{"abandoned stream", interview.ErrStreamAbandoned, http.StatusConflict},
		{"unreadable upload", &importer.ExtractionError{Message: "corrupt pdf"}, http.StatusUnprocessableEntity},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"tailoring api", &tailoring.APICallError{Message: "quota"}, http.StatusBadGateway},
		{"tailoring format", &tailoring.FormatError{Message: "bad json"}, http.StatusBadGateway},
		{"import parse", &importer.ParseError{Message: "bad json"}, http.StatusBadGateway},
		{"interviewer", &interview.CollaboratorError{Message: "overloaded"}, http.StatusBadGateway},
		{"fetch", &fetch.Error{URL: "https://example.com", Message: "HTTP status 500"}, http.StatusBadGateway},
		{"upload", &storage.UploadError{Key: "exports/a.pdf"}, http.StatusBadGateway},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("update draft: %w", &draft.NotFoundError{ID: "7"})
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))

	persist := &session.PersistError{Message: "save draft", Cause: context.DeadlineExceeded}
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(persist))

	timedOut := &tailoring.APICallError{Message: "generate", Cause: context.DeadlineExceeded}
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(timedOut), "timeouts report as 504 whoever saw them")
}

func TestHTTPStatus_ValidatorErrors(t *testing.T) {
	err := (&types.InterviewMessageRequest{}).Validate()
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
