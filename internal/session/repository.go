package session

import (
	"context"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// DraftRepository persists drafts by owner id. GetDraft returns nil when the owner
// has none; deleting a missing draft is not an error.
type DraftRepository interface {
	GetDraft(ctx context.Context, ownerID string) (*types.ResumeDraft, error)
	SaveDraft(ctx context.Context, ownerID string, d types.ResumeDraft) error
	DeleteDraft(ctx context.Context, ownerID string) error
}

// MemoryRepository keeps drafts in process memory.
type MemoryRepository struct {
	mu     sync.Mutex
	drafts map[string]types.ResumeDraft
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{drafts: make(map[string]types.ResumeDraft)}
}

// GetDraft implements DraftRepository.
func (r *MemoryRepository) GetDraft(_ context.Context, ownerID string) (*types.ResumeDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[ownerID]
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

// SaveDraft implements DraftRepository.
func (r *MemoryRepository) SaveDraft(_ context.Context, ownerID string, d types.ResumeDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[ownerID] = d.Clone()
	return nil
}

// DeleteDraft implements DraftRepository.
func (r *MemoryRepository) DeleteDraft(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, ownerID)
	return nil
}
