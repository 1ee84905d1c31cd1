// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalDetails holds the candidate's contact block. All fields are free text.
type PersonalDetails struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// ExperienceEntry is one position in the draft. ID is the join key for AI output.
type ExperienceEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description string   `json:"description"`
	Points      []string `json:"points,omitempty"` // populated only after tailoring
}

// ExperienceField names an editable field of an ExperienceEntry.
type ExperienceField string

// Editable experience fields
const (
	FieldTitle       ExperienceField = "title"
	FieldCompany     ExperienceField = "company"
	FieldStartDate   ExperienceField = "startDate"
	FieldEndDate     ExperienceField = "endDate"
	FieldDescription ExperienceField = "description"
)

// ExperienceFields lists every editable field in display order.
func ExperienceFields() []ExperienceField {
	return []ExperienceField{FieldTitle, FieldCompany, FieldStartDate, FieldEndDate, FieldDescription}
}

// ResumeDraft is the complete editable user input for one resume.
// Experience order is display order.
type ResumeDraft struct {
	Personal      PersonalDetails   `json:"personal"`
	Experience    []ExperienceEntry `json:"experience"`
	Skills        string            `json:"skills"`
	FinalThoughts string            `json:"finalThoughts"`
	TemplateID    string            `json:"templateId"`
	Overlay       *AiOverlay        `json:"aiOverlay,omitempty"`
}

// Clone returns a deep copy of the draft.
func (d ResumeDraft) Clone() ResumeDraft {
	out := d
	if d.Experience != nil {
		out.Experience = make([]ExperienceEntry, len(d.Experience))
		for i, e := range d.Experience {
			out.Experience[i] = e.clone()
		}
	}
	if d.Overlay != nil {
		overlay := d.Overlay.Clone()
		out.Overlay = &overlay
	}
	return out
}

// FindExperience returns the index of the entry with the given id, or -1.
func (d ResumeDraft) FindExperience(id string) int {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			return i
		}
	}
	return -1
}

func (e ExperienceEntry) clone() ExperienceEntry {
	out := e
	if e.Points != nil {
		out.Points = append([]string(nil), e.Points...)
	}
	return out
}
