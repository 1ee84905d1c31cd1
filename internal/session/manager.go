package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/draft"
)

// DefaultIdleTTL is how long an unused workspace stays in memory. Its draft is
// already persisted, so eviction only drops the interview conversation.
const DefaultIdleTTL = 24 * time.Hour

// Manager maps owner ids to workspaces, loading persisted drafts on first use.
type Manager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	repo       DraftRepository
	newIDs     func() draft.IDGenerator
	idleTTL    time.Duration
	now        func() time.Time

	sweepStop chan struct{}
	stopOnce  sync.Once
}

// NewManager creates a manager. A nil repo keeps drafts in memory only.
func NewManager(repo DraftRepository) *Manager {
	if repo == nil {
		repo = NewMemoryRepository()
	}
	return &Manager{
		workspaces: make(map[string]*Workspace),
		repo:       repo,
		newIDs:     func() draft.IDGenerator { return draft.UUIDGenerator{} },
		idleTTL:    DefaultIdleTTL,
		now:        time.Now,
	}
}

// WithIdleTTL sets how long an unused workspace is kept. Zero or less keeps the
// default.
func (m *Manager) WithIdleTTL(ttl time.Duration) *Manager {
	if ttl > 0 {
		m.idleTTL = ttl
	}
	return m
}

// WithIDs sets the experience id generator used for new workspaces.
func (m *Manager) WithIDs(fn func() draft.IDGenerator) *Manager {
	m.newIDs = fn
	return m
}

// Workspace returns the owner's workspace, creating it from the persisted draft or
// from an empty draft.
func (m *Manager) Workspace(ctx context.Context, ownerID string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.workspaces[ownerID]; ok {
		w.lastUsed = m.now()
		return w, nil
	}

	saved, err := m.repo.GetDraft(ctx, ownerID)
	if err != nil {
		return nil, &PersistError{Message: "failed to load draft", Cause: err}
	}

	var store *draft.Store
	if saved != nil {
		store = draft.Restore(m.newIDs(), *saved)
		log.Printf("[SESSION] Restored draft for %s (%d experience entries)", ownerID, len(saved.Experience))
	} else {
		store = draft.NewStore(m.newIDs())
	}

	w := newWorkspace(ownerID, store, m.repo)
	w.lastUsed = m.now()
	m.workspaces[ownerID] = w
	return w, nil
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Sweep drops workspaces unused since before now minus the idle TTL and returns how
// many were dropped. Workspaces with an operation in flight are kept.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.idleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for owner, w := range m.workspaces {
		if w.lastUsed.Before(cutoff) && w.idle() {
			delete(m.workspaces, owner)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs Sweep every interval until Stop is called.
func (m *Manager) StartSweeper(interval time.Duration) {
	if interval <= 0 || m.sweepStop != nil {
		return
	}
	m.sweepStop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				if n := m.Sweep(now); n > 0 {
					log.Printf("[SESSION] Evicted %d idle workspaces", n)
				}
			case <-m.sweepStop:
				return
			}
		}
	}()
}

// Stop ends the sweeper. It is safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		if m.sweepStop != nil {
			close(m.sweepStop)
		}
	})
}
