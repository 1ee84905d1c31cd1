// Package reconcile merges a draft's AI overlay back onto its experience entries,
// producing the render-ready resume consumed by every template.
package reconcile

import (
	"errors"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNoOverlay is returned by Ready when the draft has not been tailored yet.
// Callers send the user back to the editing stage instead of rendering.
var ErrNoOverlay = errors.New("draft has no AI overlay")

// Ready reports whether d can be reconciled.
func Ready(d types.ResumeDraft) error {
	if d.Overlay == nil {
		return ErrNoOverlay
	}
	return nil
}

// Reconcile builds the render-ready resume for d.
//
// Experience entries keep their order and identity fields. Bullet points come from the
// overlay entry with the same id, verbatim even when empty; entries without a match fall
// back to a single point holding the raw description. Summary and skills are copied from
// the overlay. d is not modified and the output shares no slices with it.
//
// Call Ready first: d.Overlay must be non-nil.
func Reconcile(d types.ResumeDraft) types.RenderReadyResume {
	overlay := d.Overlay

	points := make(map[string][]string, len(overlay.DetailedExperience))
	for _, ep := range overlay.DetailedExperience {
		if _, seen := points[ep.ID]; seen {
			continue
		}
		points[ep.ID] = ep.Points
	}

	out := types.RenderReadyResume{
		Name:                d.Personal.Name,
		Email:               d.Personal.Email,
		Phone:               d.Personal.Phone,
		LinkedIn:            d.Personal.LinkedIn,
		GitHub:              d.Personal.GitHub,
		ProfessionalSummary: overlay.ProfessionalSummary,
		TechnicalSkills:     copyStrings(overlay.TechnicalSkills),
		Experience:          make([]types.RenderedExperience, 0, len(d.Experience)),
	}

	for _, e := range d.Experience {
		bullets, ok := points[e.ID]
		if ok {
			bullets = copyStrings(bullets)
		} else {
			bullets = []string{e.Description}
		}
		out.Experience = append(out.Experience, types.RenderedExperience{
			ID:        e.ID,
			Title:     e.Title,
			Company:   e.Company,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Points:    bullets,
		})
	}
	return out
}

// copyStrings returns a non-nil copy of s.
func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
