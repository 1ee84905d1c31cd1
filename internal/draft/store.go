package draft

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// maxIDAttempts bounds retries when a generator returns an id already issued.
const maxIDAttempts = 64

// Store owns one session's draft. It is single-writer: callers serialize access.
type Store struct {
	current    types.ResumeDraft
	ids        IDGenerator
	issued     map[string]struct{}
	generation uint64
}

// NewStore creates a store holding the empty initial draft.
// A nil generator defaults to UUIDGenerator.
func NewStore(ids IDGenerator) *Store {
	return Restore(ids, Empty())
}

// Restore creates a store around a previously persisted draft.
// Ids already present in the draft are treated as issued.
func Restore(ids IDGenerator, d types.ResumeDraft) *Store {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	s := &Store{
		current: d.Clone(),
		ids:     ids,
		issued:  make(map[string]struct{}),
	}
	if s.current.Experience == nil {
		s.current.Experience = []types.ExperienceEntry{}
	}
	for _, e := range s.current.Experience {
		s.issued[e.ID] = struct{}{}
	}
	return s
}

// Draft returns a deep copy of the current draft.
func (s *Store) Draft() types.ResumeDraft {
	return s.current.Clone()
}

// Dispatch applies an action. On error the draft is unchanged.
func (s *Store) Dispatch(a Action) error {
	next, err := Apply(s.current, a)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// SetPersonal merges a partial personal-details update.
func (s *Store) SetPersonal(patch types.PersonalPatch) error {
	return s.Dispatch(SetPersonal{Patch: patch})
}

// AddExperience appends entry under a freshly issued id and returns that id.
func (s *Store) AddExperience(entry types.ExperienceEntry) (string, error) {
	id, err := s.freshID()
	if err != nil {
		return "", err
	}
	if err := s.Dispatch(AddExperience{ID: id, Entry: entry}); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateExperience sets one field of one entry.
func (s *Store) UpdateExperience(id string, field types.ExperienceField, value string) error {
	return s.Dispatch(UpdateExperience{ID: id, Field: field, Value: value})
}

// RemoveExperience deletes one entry. Removing the last entry is allowed.
func (s *Store) RemoveExperience(id string) error {
	return s.Dispatch(RemoveExperience{ID: id})
}

// SetSkills replaces the skills text.
func (s *Store) SetSkills(value string) error {
	return s.Dispatch(SetSkills{Value: value})
}

// SetFinalThoughts replaces the final-thoughts text.
func (s *Store) SetFinalThoughts(value string) error {
	return s.Dispatch(SetFinalThoughts{Value: value})
}

// SetTemplate selects the template id.
func (s *Store) SetTemplate(id string) error {
	return s.Dispatch(SetTemplate{TemplateID: id})
}

// SetOverlay replaces the overlay wholesale.
func (s *Store) SetOverlay(overlay *types.AiOverlay) error {
	return s.Dispatch(SetOverlay{Overlay: overlay})
}

// Reset returns the draft to its initial state. Issued ids stay retired.
func (s *Store) Reset() error {
	return s.Dispatch(Reset{})
}

// LoadFromImport merges an importer pre-fill into the draft. Imported entries are
// re-keyed with fresh ids and the overlay is cleared, since it no longer matches.
// The selected template is kept.
func (s *Store) LoadFromImport(prefill types.ResumeDraft) error {
	next := s.current.Clone()
	next.Personal = prefill.Personal
	next.Skills = prefill.Skills
	next.FinalThoughts = prefill.FinalThoughts
	next.Overlay = nil
	next.Experience = make([]types.ExperienceEntry, 0, len(prefill.Experience))

	issuedNow := make([]string, 0, len(prefill.Experience))
	for _, e := range prefill.Experience {
		id, err := s.freshID()
		if err != nil {
			for _, rolledBack := range issuedNow {
				delete(s.issued, rolledBack)
			}
			return err
		}
		issuedNow = append(issuedNow, id)
		e.ID = id
		e.Points = nil
		next.Experience = append(next.Experience, e)
	}
	s.current = next
	return nil
}

// Checkpoint is a saved draft and submission counter for Rollback.
type Checkpoint struct {
	draft      types.ResumeDraft
	generation uint64
}

// Checkpoint captures the current draft and submission counter.
func (s *Store) Checkpoint() Checkpoint {
	return Checkpoint{draft: s.current.Clone(), generation: s.generation}
}

// Rollback restores the draft and submission counter saved in c. Ids issued since
// the checkpoint stay retired.
func (s *Store) Rollback(c Checkpoint) {
	s.current = c.draft.Clone()
	s.generation = c.generation
}

// Generation returns the submission counter.
func (s *Store) Generation() uint64 {
	return s.generation
}

// BeginSubmission increments and returns the submission counter. A response
// carrying an older value belongs to an abandoned submission.
func (s *Store) BeginSubmission() uint64 {
	s.generation++
	return s.generation
}

// freshID asks the generator for ids until it yields one never issued before.
func (s *Store) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; used {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("failed to issue a fresh experience id after %d attempts", maxIDAttempts)
}
