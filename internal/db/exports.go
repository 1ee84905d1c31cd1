package db

import (
	"context"
	"fmt"
)

// RecordExport stores an export record and returns it with its id and timestamp.
func (db *DB) RecordExport(ctx context.Context, ownerID string, in ExportInput) (*Export, error) {
	e := Export{
		OwnerID:    ownerID,
		TemplateID: in.TemplateID,
		Target:     in.Target,
		StorageKey: in.StorageKey,
		SizeBytes:  in.SizeBytes,
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_exports (owner_id, template_id, target, storage_key, size_bytes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		ownerID, in.TemplateID, in.Target, in.StorageKey, in.SizeBytes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record export: %w", err)
	}
	return &e, nil
}

// ListExports returns the owner's most recent exports, newest first.
func (db *DB) ListExports(ctx context.Context, ownerID string, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = DefaultExportLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, owner_id, template_id, target, storage_key, size_bytes, created_at
		 FROM resume_exports WHERE owner_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.TemplateID, &e.Target, &e.StorageKey, &e.SizeBytes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return exports, nil
}
