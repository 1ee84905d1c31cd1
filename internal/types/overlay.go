// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AiOverlay is the generative-AI rewrite of a draft, keyed by experience id.
// DetailedExperience may cover a subset or superset of the draft's ids.
type AiOverlay struct {
	ProfessionalSummary string             `json:"professionalSummary"`
	TechnicalSkills     []string           `json:"technicalSkills"`
	DetailedExperience  []ExperiencePoints `json:"detailedExperience"`
}

// ExperiencePoints holds the rewritten bullet points for one experience id.
type ExperiencePoints struct {
	ID     string   `json:"id"`
	Points []string `json:"points"`
}

// Clone returns a deep copy of the overlay.
func (o AiOverlay) Clone() AiOverlay {
	out := AiOverlay{ProfessionalSummary: o.ProfessionalSummary}
	if o.TechnicalSkills != nil {
		out.TechnicalSkills = append([]string(nil), o.TechnicalSkills...)
	}
	if o.DetailedExperience != nil {
		out.DetailedExperience = make([]ExperiencePoints, len(o.DetailedExperience))
		for i, ep := range o.DetailedExperience {
			out.DetailedExperience[i] = ExperiencePoints{ID: ep.ID}
			if ep.Points != nil {
				out.DetailedExperience[i].Points = append([]string(nil), ep.Points...)
			}
		}
	}
	return out
}

// RenderReadyResume is the flattened data shape consumed by every template.
// It is derived on each render and never stored.
type RenderReadyResume struct {
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	LinkedIn            string               `json:"linkedin"`
	GitHub              string               `json:"github"`
	ProfessionalSummary string               `json:"professionalSummary"`
	TechnicalSkills     []string             `json:"technicalSkills"`
	Experience          []RenderedExperience `json:"experience"`
}

// RenderedExperience is one experience block after reconciliation.
type RenderedExperience struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Points    []string `json:"points"`
}
