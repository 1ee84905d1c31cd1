package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

// SaveDraft stores the owner's draft, replacing any previous one.
func (db *DB) SaveDraft(ctx context.Context, ownerID string, d types.ResumeDraft) error {
	content, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resume_drafts (owner_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (owner_id) DO UPDATE SET content = $2, updated_at = NOW()`,
		ownerID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetDraft returns the owner's draft, or nil if none is stored.
func (db *DB) GetDraft(ctx context.Context, ownerID string) (*types.ResumeDraft, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM resume_drafts WHERE owner_id = $1`,
		ownerID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return decodeDraft(content)
}

// DeleteDraft removes the owner's draft. Deleting a missing draft is not an error.
func (db *DB) DeleteDraft(ctx context.Context, ownerID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resume_drafts WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// decodeDraft unmarshals stored content. Experience is never nil in the result.
func decodeDraft(content []byte) (*types.ResumeDraft, error) {
	var d types.ResumeDraft
	if err := json.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if d.Experience == nil {
		d.Experience = []types.ExperienceEntry{}
	}
	return &d, nil
}
