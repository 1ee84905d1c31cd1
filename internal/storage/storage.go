// Package storage uploads exported resume documents to object storage and hands out
// time-limited download links.
package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"

	"github.com/google/uuid"
)

// ExportStore stores an exported document and returns a URL the owner can fetch it
// from. An empty URL means the caller streams the bytes itself.
type ExportStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// NopStore keeps nothing. Exports are streamed inline.
type NopStore struct{}

// Put implements ExportStore.
func (NopStore) Put(context.Context, string, string, []byte) (string, error) {
	return "", nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ExportKey builds a unique object key for an owner's export.
func ExportKey(ownerID, templateID, ext string) string {
	owner := unsafeKeyChars.ReplaceAllString(ownerID, "_")
	if owner == "" {
		owner = "anonymous"
	}
	name := fmt.Sprintf("%s-%s.%s", unsafeKeyChars.ReplaceAllString(templateID, "_"), uuid.NewString(), ext)
	return path.Join("exports", owner, name)
}

// UploadError wraps an object storage failure.
type UploadError struct {
	Key   string
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to store export %s: %v", e.Key, e.Cause)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}
