// Package schemas validates JSON produced by the AI collaborators and draft files
// against embedded JSON Schemas before any of it reaches the resume draft.
package schemas

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Embedded schema names.
const (
	AiOverlaySchema     = "overlay.schema.json"
	ImportedDraftSchema = "imported_draft.schema.json"
	DraftSchema         = "draft.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// registry compiles each embedded schema on first use.
var registry = struct {
	sync.Mutex
	byName map[string]*gojsonschema.Schema
}{byName: map[string]*gojsonschema.Schema{}}

// FieldError is one schema violation. Field is "(root)" for the top-level value.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation of one document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("document does not match %s: %s", ve.Schema, strings.Join(parts, "; "))
}

// SchemaLoadError means an embedded schema is missing or does not compile.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	msg := fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError means the input is not JSON at all.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return "invalid JSON document: " + e.Cause.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

func compiled(name string) (*gojsonschema.Schema, error) {
	registry.Lock()
	defer registry.Unlock()

	if s := registry.byName[name]; s != nil {
		return s, nil
	}
	raw, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	registry.byName[name] = s
	return s, nil
}

// Names lists the embedded schemas.
func Names() ([]string, error) {
	return fs.Glob(schemaFiles, "*.schema.json")
}

// Validate checks document against the embedded schema name.
func Validate(name string, document []byte) error {
	s, err := compiled(name)
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name}
	for _, re := range result.Errors() {
		field := re.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: re.Description()})
	}
	return ve
}

// ValidateFile reads path and checks it against the embedded schema name.
func ValidateFile(name, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	raw, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("JSON file not found: %s", abs)
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", abs, err)
	}
	return Validate(name, raw)
}
