package db

import (
	"time"

	"github.com/google/uuid"
)

// Export records one exported document.
type Export struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    string    `json:"owner_id"`
	TemplateID string    `json:"template_id"`
	Target     string    `json:"target"`
	StorageKey string    `json:"storage_key,omitempty"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExportInput is the data needed to record an export.
type ExportInput struct {
	TemplateID string
	Target     string
	StorageKey string
	SizeBytes  int64
}

// DefaultExportLimit caps ListExports when no limit is given.
const DefaultExportLimit = 50
