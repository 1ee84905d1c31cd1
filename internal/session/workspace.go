package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/interview"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/semaphore"
)

// Workspace is one owner's editing state. Store access is serialized by the
// workspace; import and tailoring each allow one request in flight.
type Workspace struct {
	OwnerID string

	lastUsed time.Time // guarded by Manager.mu

	mu    sync.Mutex
	store *draft.Store
	repo  DraftRepository
	conv  *interview.Conversation

	tailoring *semaphore.Weighted
	importing *semaphore.Weighted
}

func newWorkspace(ownerID string, store *draft.Store, repo DraftRepository) *Workspace {
	return &Workspace{
		OwnerID:   ownerID,
		store:     store,
		repo:      repo,
		conv:      interview.NewConversation(),
		tailoring: semaphore.NewWeighted(1),
		importing: semaphore.NewWeighted(1),
	}
}

// Draft returns a snapshot of the current draft.
func (w *Workspace) Draft() types.ResumeDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Draft()
}

// Conversation returns the owner's interview conversation.
func (w *Workspace) Conversation() *interview.Conversation {
	return w.conv
}

// Update runs fn against the store and saves the result. When fn or the save fails
// the draft and submission counter are rolled back.
func (w *Workspace) Update(ctx context.Context, fn func(s *draft.Store) error) (types.ResumeDraft, error) {
	return w.mutate(ctx, fn, w.saveLocked)
}

// Reset empties the draft, removes the persisted copy and supersedes any tailoring
// in flight.
func (w *Workspace) Reset(ctx context.Context) (types.ResumeDraft, error) {
	return w.mutate(ctx, func(s *draft.Store) error {
		s.BeginSubmission()
		return s.Reset()
	}, w.deleteLocked)
}

func (w *Workspace) mutate(ctx context.Context, fn func(s *draft.Store) error, persist func(context.Context) (types.ResumeDraft, error)) (types.ResumeDraft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cp := w.store.Checkpoint()
	if err := fn(w.store); err != nil {
		w.store.Rollback(cp)
		return types.ResumeDraft{}, err
	}
	d, err := persist(ctx)
	if err != nil {
		w.store.Rollback(cp)
		return types.ResumeDraft{}, err
	}
	return d, nil
}

// ApplyImport merges an importer pre-fill and supersedes any tailoring in flight,
// since the experience ids change.
func (w *Workspace) ApplyImport(ctx context.Context, prefill types.ResumeDraft) (types.ResumeDraft, error) {
	return w.Update(ctx, func(s *draft.Store) error {
		if err := s.LoadFromImport(prefill); err != nil {
			return err
		}
		s.BeginSubmission()
		return nil
	})
}

// BeginImport claims the import slot. Call release when the import finishes.
func (w *Workspace) BeginImport() (release func(), err error) {
	if !w.importing.TryAcquire(1) {
		return nil, &BusyError{Op: "import"}
	}
	return func() { w.importing.Release(1) }, nil
}

// BeginTailor claims the tailoring slot and opens a submission. It returns a snapshot
// of the draft to send and the submission's generation for CommitOverlay.
func (w *Workspace) BeginTailor() (snapshot types.ResumeDraft, gen uint64, release func(), err error) {
	if !w.tailoring.TryAcquire(1) {
		return types.ResumeDraft{}, 0, nil, &BusyError{Op: "tailoring"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	gen = w.store.BeginSubmission()
	return w.store.Draft(), gen, func() { w.tailoring.Release(1) }, nil
}

// CommitOverlay stores overlay if gen is still the current submission.
func (w *Workspace) CommitOverlay(ctx context.Context, gen uint64, overlay *types.AiOverlay) (types.ResumeDraft, error) {
	return w.Update(ctx, func(s *draft.Store) error {
		if s.Generation() != gen {
			return ErrStaleSubmission
		}
		return s.SetOverlay(overlay)
	})
}

func (w *Workspace) saveLocked(ctx context.Context) (types.ResumeDraft, error) {
	d := w.store.Draft()
	if w.repo != nil {
		if err := w.repo.SaveDraft(ctx, w.OwnerID, d); err != nil {
			return d, &PersistError{Message: "failed to save draft", Cause: err}
		}
	}
	return d, nil
}

func (w *Workspace) deleteLocked(ctx context.Context) (types.ResumeDraft, error) {
	d := w.store.Draft()
	if w.repo != nil {
		if err := w.repo.DeleteDraft(ctx, w.OwnerID); err != nil {
			return d, &PersistError{Message: "failed to delete draft", Cause: err}
		}
	}
	return d, nil
}

// idle reports whether no import, tailoring or interview reply is in flight.
func (w *Workspace) idle() bool {
	if !w.tailoring.TryAcquire(1) {
		return false
	}
	defer w.tailoring.Release(1)
	if !w.importing.TryAcquire(1) {
		return false
	}
	defer w.importing.Release(1)
	return !w.conv.Awaiting()
}
