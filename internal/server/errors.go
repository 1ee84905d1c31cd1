// Package server provides the HTTP API of the resume builder.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/interview"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/tailoring"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
	cause   error
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ErrValidation) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case as[*ErrValidation](err), as[validator.ValidationErrors](err), as[*draft.InputError](err),
		as[*importer.InputError](err), as[*interview.InputError](err), as[*tailoring.InputError](err):
		return http.StatusBadRequest
	case as[*importer.UnsupportedTypeError](err):
		return http.StatusUnsupportedMediaType
	case as[*http.MaxBytesError](err):
		return http.StatusRequestEntityTooLarge
	case as[*draft.NotFoundError](err), as[*rendering.TemplateNotFoundError](err), as[*interview.PersonaNotFoundError](err):
		return http.StatusNotFound
	case as[*session.BusyError](err), as[*interview.StateError](err),
		errors.Is(err, session.ErrStaleSubmission),
		errors.Is(err, reconcile.ErrNoOverlay),
		errors.Is(err, interview.ErrStreamAbandoned):
		return http.StatusConflict
	case as[*importer.ExtractionError](err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case as[*tailoring.APICallError](err), as[*tailoring.FormatError](err), as[*importer.ParseError](err),
		as[*interview.CollaboratorError](err), as[*fetch.Error](err), as[*storage.UploadError](err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// as reports whether err's chain holds an error of type T.
func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
