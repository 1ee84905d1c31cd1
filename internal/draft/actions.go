package draft

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Action is a single state transition on a ResumeDraft.
type Action interface {
	apply(d types.ResumeDraft) (types.ResumeDraft, error)
}

// SetPersonal merges the non-nil fields of Patch into the personal details.
type SetPersonal struct {
	Patch types.PersonalPatch
}

// AddExperience appends a new entry. ID must be fresh; Store assigns it.
type AddExperience struct {
	ID    string
	Entry types.ExperienceEntry // ID of Entry is ignored
}

// UpdateExperience sets one field of the entry with the given id.
type UpdateExperience struct {
	ID    string
	Field types.ExperienceField
	Value string
}

// RemoveExperience deletes the entry with the given id.
type RemoveExperience struct {
	ID string
}

// SetSkills replaces the skills text.
type SetSkills struct {
	Value string
}

// SetFinalThoughts replaces the final-thoughts text.
type SetFinalThoughts struct {
	Value string
}

// SetTemplate selects a template id. Existence is checked by the renderer, not here.
type SetTemplate struct {
	TemplateID string
}

// SetOverlay replaces the AI overlay wholesale and mirrors its points onto the
// matching experience entries. A nil Overlay clears both.
type SetOverlay struct {
	Overlay *types.AiOverlay
}

// Reset returns the draft to its empty initial state.
type Reset struct{}

// Empty returns the initial draft of a new session.
func Empty() types.ResumeDraft {
	return types.ResumeDraft{
		Experience: []types.ExperienceEntry{},
	}
}

// Apply runs a on a copy of d and returns the new draft. d is never mutated.
// On error the returned draft is d unchanged.
func Apply(d types.ResumeDraft, a Action) (types.ResumeDraft, error) {
	if a == nil {
		return d, &InputError{Message: "nil action"}
	}
	next, err := a.apply(d.Clone())
	if err != nil {
		return d, err
	}
	return next, nil
}

func (a SetPersonal) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	p := a.Patch
	if p.Name != nil {
		d.Personal.Name = *p.Name
	}
	if p.Email != nil {
		d.Personal.Email = *p.Email
	}
	if p.Phone != nil {
		d.Personal.Phone = *p.Phone
	}
	if p.LinkedIn != nil {
		d.Personal.LinkedIn = *p.LinkedIn
	}
	if p.GitHub != nil {
		d.Personal.GitHub = *p.GitHub
	}
	return d, nil
}

func (a AddExperience) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	if a.ID == "" {
		return d, &InputError{Field: "id", Message: "experience id is required"}
	}
	if d.FindExperience(a.ID) >= 0 {
		return d, &InputError{Field: "id", Message: fmt.Sprintf("experience id %q already in use", a.ID)}
	}
	entry := a.Entry
	entry.ID = a.ID
	if entry.Points != nil {
		entry.Points = append([]string(nil), entry.Points...)
	}
	d.Experience = append(d.Experience, entry)
	return d, nil
}

func (a UpdateExperience) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	idx := d.FindExperience(a.ID)
	if idx < 0 {
		return d, &NotFoundError{ID: a.ID}
	}
	e := &d.Experience[idx]
	switch a.Field {
	case types.FieldTitle:
		e.Title = a.Value
	case types.FieldCompany:
		e.Company = a.Value
	case types.FieldStartDate:
		e.StartDate = a.Value
	case types.FieldEndDate:
		e.EndDate = a.Value
	case types.FieldDescription:
		e.Description = a.Value
	default:
		return d, &InputError{Field: "field", Message: fmt.Sprintf("unknown experience field %q", a.Field)}
	}
	return d, nil
}

func (a RemoveExperience) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	idx := d.FindExperience(a.ID)
	if idx < 0 {
		return d, &NotFoundError{ID: a.ID}
	}
	d.Experience = append(d.Experience[:idx], d.Experience[idx+1:]...)
	return d, nil
}

func (a SetSkills) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	d.Skills = a.Value
	return d, nil
}

func (a SetFinalThoughts) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	d.FinalThoughts = a.Value
	return d, nil
}

func (a SetTemplate) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	if a.TemplateID == "" {
		return d, &InputError{Field: "templateId", Message: "template id is required"}
	}
	d.TemplateID = a.TemplateID
	return d, nil
}

func (a SetOverlay) apply(d types.ResumeDraft) (types.ResumeDraft, error) {
	d.Overlay = nil
	if a.Overlay != nil {
		overlay := a.Overlay.Clone()
		d.Overlay = &overlay
	}
	mirrorPoints(&d)
	return d, nil
}

// mirrorPoints copies each entry's overlay points onto the entry. The first overlay
// entry for an id wins, matching reconciliation; unmatched entries get nil Points.
func mirrorPoints(d *types.ResumeDraft) {
	byID := map[string][]string{}
	if d.Overlay != nil {
		for _, ep := range d.Overlay.DetailedExperience {
			if _, seen := byID[ep.ID]; !seen {
				byID[ep.ID] = ep.Points
			}
		}
	}
	for i := range d.Experience {
		points, ok := byID[d.Experience[i].ID]
		if !ok {
			d.Experience[i].Points = nil
			continue
		}
		d.Experience[i].Points = append([]string{}, points...)
	}
}

func (Reset) apply(_ types.ResumeDraft) (types.ResumeDraft, error) {
	return Empty(), nil
}
